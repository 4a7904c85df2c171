package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a playing team. Inactive teams are skipped in turn rotation
// but retained so their score history survives.
type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
