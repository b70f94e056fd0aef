package dto

import (
	"applytrack/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"_id"`
	ContactName string    `json:"contactName"`
	Position    string    `json:"position"`
	CompanyName string    `json:"companyName"`
	AppliedOn   string    `json:"appliedOn"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		ContactName: a.ContactName,
		Position:    a.Position,
		CompanyName: a.CompanyName,
		AppliedOn:   a.AppliedOn,
	}
}

func NewApplicationListResponse(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

type ApplicationPayload struct {
	User        UserResponse        `json:"user"`
	Application ApplicationResponse `json:"application"`
}
