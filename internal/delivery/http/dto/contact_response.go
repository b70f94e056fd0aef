package dto

import (
	"applytrack/internal/domain/contact"

	"github.com/google/uuid"
)

type ContactResponse struct {
	ID          uuid.UUID `json:"_id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	CompanyName string    `json:"companyName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address1    string    `json:"address1"`
	Address2    string    `json:"address2"`
}

func NewContactResponse(c contact.Contact) ContactResponse {
	return ContactResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		CompanyName: c.CompanyName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address1:    c.Address1,
		Address2:    c.Address2,
	}
}

func NewContactListResponse(items []contact.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewContactResponse(c))
	}
	return out
}

// ContactPayload is the result of addContact: the owner plus the new record.
type ContactPayload struct {
	User    UserResponse    `json:"user"`
	Contact ContactResponse `json:"contact"`
}
