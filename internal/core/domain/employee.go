package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Employee is the stored row. PositionID is a reference, not an owned object.
type Employee struct {
	ID         uuid.UUID
	Name       string
	PositionID uuid.UUID
}

// EmployeeDetail is an employee enriched with the name of its position at
// read time. PositionName is nil when the position no longer exists.
type EmployeeDetail struct {
	Employee
	PositionName *string
}

// NormalizeEmployeeName trims surrounding whitespace and rejects empty names.
func NormalizeEmployeeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidEmployeeName
	}
	return name, nil
}
