package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups questions. The name is only a grouping/display key.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
