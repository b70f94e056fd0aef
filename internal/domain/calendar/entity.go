package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Event is a top-level record that references its owner by id.
type Event struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Todo      string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
