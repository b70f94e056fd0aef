package application

import (
	"time"

	"github.com/google/uuid"
)

type Fields struct {
	ContactName string
	Position    string
	CompanyName string
	AppliedOn   string
}

type Application struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Fields
	CreatedAt time.Time
	UpdatedAt time.Time
}
