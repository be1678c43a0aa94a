package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Position is a job title employees may reference.
type Position struct {
	ID   uuid.UUID `json:"position_id"`
	Name string    `json:"position_name"`
}

// NormalizePositionName trims surrounding whitespace and rejects empty names.
func NormalizePositionName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidPositionName
	}
	return name, nil
}
