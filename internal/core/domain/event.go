package domain

import (
	"time"

	"github.com/google/uuid"
)

type EntityKind string

const (
	EntityPosition EntityKind = "position"
	EntityEmployee EntityKind = "employee"
)

type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionUpdated ChangeAction = "updated"
	ActionDeleted ChangeAction = "deleted"
)

// ChangeEvent records a successful mutation of a position or employee.
type ChangeEvent struct {
	Entity     EntityKind   `json:"entity"`
	Action     ChangeAction `json:"action"`
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name,omitempty"`
	Actor      string       `json:"actor,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}
