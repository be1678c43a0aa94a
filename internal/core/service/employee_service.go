package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
	"github.com/hrcore/employee-service/internal/pkg/metrics"
)

const employeeScope = "employee"

type EmployeeService struct {
	employees  ports.EmployeeRepository
	positions  ports.PositionRepository
	idem       ports.IdempotencyStore
	events     ports.EventSink
	log        zerolog.Logger
	replayWait time.Duration
}

// NewEmployeeService wires an EmployeeService. idem and events may be nil.
func NewEmployeeService(
	employees ports.EmployeeRepository,
	positions ports.PositionRepository,
	idem ports.IdempotencyStore,
	events ports.EventSink,
	log zerolog.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees:  employees,
		positions:  positions,
		idem:       idem,
		events:     events,
		log:        log,
		replayWait: defaultReplayWait,
	}
}

// Create stores a new employee after confirming the position exists. The
// result carries the position name resolved during that check.
func (s *EmployeeService) Create(ctx context.Context, input ports.CreateEmployeeInput) (*domain.EmployeeDetail, error) {
	name, err := domain.NormalizeEmployeeName(input.Name)
	if err != nil {
		return nil, err
	}

	res := reserve(ctx, s.idem, s.log, employeeScope, input.IdempotencyKey)
	if res.replay {
		return s.replay(ctx, input.IdempotencyKey, res.id)
	}

	position, err := s.resolvePosition(ctx, input.PositionID)
	if err != nil {
		release(ctx, s.idem, s.log, employeeScope, input.IdempotencyKey, res)
		return nil, err
	}

	e := &domain.Employee{ID: res.id, Name: name, PositionID: position.ID}
	if err := s.employees.Create(ctx, e); err != nil {
		release(ctx, s.idem, s.log, employeeScope, input.IdempotencyKey, res)
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.publish(ctx, domain.ActionCreated, e)
	s.log.Info().
		Str("emp_id", e.ID.String()).
		Str("position_id", e.PositionID.String()).
		Str("actor", domain.ActorFrom(ctx)).
		Msg("employee created")

	return &domain.EmployeeDetail{Employee: *e, PositionName: &position.Name}, nil
}

// Get returns the employee enriched with its position name. A dangling
// position reference leaves PositionName nil instead of failing the read.
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.EmployeeDetail, error) {
	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, e), nil
}

// List returns every employee, enriched with one batched position lookup.
func (s *EmployeeService) List(ctx context.Context) ([]domain.EmployeeDetail, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(employees))
	seen := make(map[uuid.UUID]struct{}, len(employees))
	for _, e := range employees {
		if _, ok := seen[e.PositionID]; ok {
			continue
		}
		seen[e.PositionID] = struct{}{}
		ids = append(ids, e.PositionID)
	}

	positions, err := s.positions.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("position enrichment failed, returning employees without position names")
		positions = nil
	}

	out := make([]domain.EmployeeDetail, 0, len(employees))
	for _, e := range employees {
		detail := domain.EmployeeDetail{Employee: e}
		if p, ok := positions[e.PositionID]; ok {
			name := p.Name
			detail.PositionName = &name
		}
		out = append(out, detail)
	}
	return out, nil
}

// Update applies the fields present in patch. A new position must exist.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, patch ports.EmployeePatch) (*domain.EmployeeDetail, error) {
	var newName string
	if patch.Name != nil {
		name, err := domain.NormalizeEmployeeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		newName = name
	}

	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var position *domain.Position
	if patch.PositionID != nil {
		position, err = s.resolvePosition(ctx, *patch.PositionID)
		if err != nil {
			return nil, err
		}
		e.PositionID = position.ID
	}
	if patch.Name != nil {
		e.Name = newName
	}

	if err := s.employees.Update(ctx, e); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.ActionUpdated, e)

	if position != nil {
		return &domain.EmployeeDetail{Employee: *e, PositionName: &position.Name}, nil
	}
	return s.enrich(ctx, e), nil
}

// Delete reports whether an employee row was removed.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.employees.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete employee: %w", err)
	}
	if removed {
		s.publish(ctx, domain.ActionDeleted, &domain.Employee{ID: id})
	}
	return removed, nil
}

func (s *EmployeeService) resolvePosition(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	position, err := s.positions.FindByID(ctx, id)
	if errors.Is(err, domain.ErrPositionNotFound) {
		metrics.ReferenceFailuresTotal.Inc()
		return nil, domain.ErrPositionReference
	}
	if err != nil {
		return nil, fmt.Errorf("resolve position: %w", err)
	}
	return position, nil
}

func (s *EmployeeService) enrich(ctx context.Context, e *domain.Employee) *domain.EmployeeDetail {
	detail := &domain.EmployeeDetail{Employee: *e}
	position, err := s.positions.FindByID(ctx, e.PositionID)
	switch {
	case err == nil:
		detail.PositionName = &position.Name
	case !errors.Is(err, domain.ErrPositionNotFound):
		s.log.Warn().Err(err).Str("emp_id", e.ID.String()).Msg("position enrichment failed")
	}
	return detail
}

func (s *EmployeeService) replay(ctx context.Context, key string, id uuid.UUID) (*domain.EmployeeDetail, error) {
	e, err := awaitRecord(ctx, s.replayWait, domain.ErrEmployeeNotFound, func(ctx context.Context) (*domain.Employee, error) {
		return s.employees.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	metrics.IdempotentReplaysTotal.WithLabelValues(employeeScope).Inc()
	s.log.Info().Str("idempotency_key", key).Str("emp_id", e.ID.String()).Msg("idempotent replay")
	return s.enrich(ctx, e), nil
}

func (s *EmployeeService) publish(ctx context.Context, action domain.ChangeAction, e *domain.Employee) {
	metrics.MutationsTotal.WithLabelValues(string(domain.EntityEmployee), string(action)).Inc()
	if s.events == nil {
		return
	}
	s.events.Enqueue(domain.ChangeEvent{
		Entity:     domain.EntityEmployee,
		Action:     action,
		ID:         e.ID,
		Name:       e.Name,
		Actor:      domain.ActorFrom(ctx),
		OccurredAt: time.Now().UTC(),
	})
}
