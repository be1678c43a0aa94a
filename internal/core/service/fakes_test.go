package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type memPositionRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]domain.Position
	findErr  error
	batchErr error
	calls    int

	// insertDelay holds Create before the row becomes visible.
	insertDelay time.Duration
}

func newMemPositionRepo() *memPositionRepo {
	return &memPositionRepo{rows: make(map[uuid.UUID]domain.Position)}
}

func (r *memPositionRepo) Create(_ context.Context, p *domain.Position) error {
	time.Sleep(r.insertDelay)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID] = *p
	return nil
}

func (r *memPositionRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrPositionNotFound
	}
	return &p, nil
}

func (r *memPositionRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.batchErr != nil {
		return nil, r.batchErr
	}
	out := make(map[uuid.UUID]domain.Position, len(ids))
	for _, id := range ids {
		if p, ok := r.rows[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *memPositionRepo) List(_ context.Context) ([]domain.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Position, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPositionRepo) Update(_ context.Context, p *domain.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[p.ID]; !ok {
		return domain.ErrPositionNotFound
	}
	r.rows[p.ID] = *p
	return nil
}

func (r *memPositionRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

type memEmployeeRepo struct {
	mu          sync.Mutex
	rows        map[uuid.UUID]domain.Employee
	createErr   error
	insertDelay time.Duration
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{rows: make(map[uuid.UUID]domain.Employee)}
}

func (r *memEmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	time.Sleep(r.insertDelay)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.rows[e.ID] = *e
	return nil
}

func (r *memEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return &e, nil
}

func (r *memEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Employee, 0, len(r.rows))
	for _, e := range r.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[e.ID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	r.rows[e.ID] = *e
	return nil
}

func (r *memEmployeeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

// ---------------------------------------------------------------------------
// Idempotency store and event sink
// ---------------------------------------------------------------------------

// memIdempotencyStore mirrors SETNX: the first Reserve for a key wins.
type memIdempotencyStore struct {
	mu         sync.Mutex
	keys       map[string]uuid.UUID
	reserveErr error
	releases   int
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{keys: make(map[string]uuid.UUID)}
}

func (s *memIdempotencyStore) Reserve(_ context.Context, scope, key string, id uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return uuid.Nil, false, s.reserveErr
	}
	if holder, ok := s.keys[scope+":"+key]; ok {
		return holder, false, nil
	}
	s.keys[scope+":"+key] = id
	return id, true, nil
}

func (s *memIdempotencyStore) Release(_ context.Context, scope, key string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[scope+":"+key] == id {
		delete(s.keys, scope+":"+key)
		s.releases++
	}
	return nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (s *recordingSink) Enqueue(e domain.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) actions() []domain.ChangeAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChangeAction, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Action)
	}
	return out
}

var errStoreDown = errors.New("store unavailable")
