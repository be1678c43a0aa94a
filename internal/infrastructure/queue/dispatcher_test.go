package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hrcore/employee-service/internal/core/domain"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
	err    error
	closed bool
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *recordingPublisher) snapshot() []domain.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ChangeEvent(nil), p.events...)
}

func TestDispatcher_DeliversInOrderPerEntity(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(4, pub, zerolog.Nop())
	d.Start(context.Background())

	id := uuid.New()
	actions := []domain.ChangeAction{domain.ActionCreated, domain.ActionUpdated, domain.ActionUpdated, domain.ActionDeleted}
	for _, a := range actions {
		d.Enqueue(domain.ChangeEvent{Entity: domain.EntityEmployee, Action: a, ID: id})
	}
	for i := 0; i < 10; i++ {
		d.Enqueue(domain.ChangeEvent{Entity: domain.EntityPosition, Action: domain.ActionCreated, ID: uuid.New()})
	}

	if err := d.Stop(); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}

	var got []domain.ChangeAction
	events := pub.snapshot()
	for _, e := range events {
		if e.ID == id {
			got = append(got, e.Action)
		}
	}
	if len(events) != 14 {
		t.Fatalf("expected 14 events, got %d", len(events))
	}
	if len(got) != len(actions) {
		t.Fatalf("expected %d events for entity, got %d", len(actions), len(got))
	}
	for i := range actions {
		if got[i] != actions[i] {
			t.Fatalf("event %d: expected %s, got %s", i, actions[i], got[i])
		}
	}
	if !pub.closed {
		t.Fatalf("expected publisher to be closed")
	}
}

func TestDispatcher_PublishErrorDoesNotStopWorker(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	d := NewDispatcher(1, pub, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.ChangeEvent{ID: uuid.New()})
	d.Enqueue(domain.ChangeEvent{ID: uuid.New()})
	_ = d.Stop()

	if n := len(pub.snapshot()); n != 2 {
		t.Fatalf("expected both events attempted, got %d", n)
	}
}

func TestDispatcher_EnqueueAfterStopIsIgnored(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(2, pub, zerolog.Nop())
	d.Start(context.Background())
	_ = d.Stop()

	d.Enqueue(domain.ChangeEvent{ID: uuid.New()})
	if err := d.Stop(); err != nil {
		t.Fatalf("second Stop returned error: %v", err)
	}
	if n := len(pub.snapshot()); n != 0 {
		t.Fatalf("expected no events, got %d", n)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(1, pub, zerolog.Nop())

	// Workers are not started, so the single channel fills up.
	for i := 0; i < channelBuffer+5; i++ {
		d.Enqueue(domain.ChangeEvent{ID: uuid.New()})
	}
	if n := len(d.workers[0]); n != channelBuffer {
		t.Fatalf("expected a full channel of %d, got %d", channelBuffer, n)
	}

	d.Start(context.Background())
	_ = d.Stop()
	if n := len(pub.snapshot()); n != channelBuffer {
		t.Fatalf("expected %d delivered events, got %d", channelBuffer, n)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingPublisher{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}

	key := uuid.New().String()
	first := d.shardIndex(key)
	for i := 0; i < 5; i++ {
		if got := d.shardIndex(key); got != first {
			t.Fatalf("shard index changed: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= defaultWorkers {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_CancelledContextStopsWorkers(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(2, pub, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		_ = d.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Stop did not return after context cancellation")
	}
}
