package contact

import (
	"time"

	"github.com/google/uuid"
)

type Fields struct {
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Phone       string
	Address1    string
	Address2    string
}

type Contact struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Fields
	CreatedAt time.Time
	UpdatedAt time.Time
}
