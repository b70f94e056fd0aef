package dto

import (
	"time"

	"applytrack/internal/domain/calendar"

	"github.com/google/uuid"
)

type EventResponse struct {
	ID      uuid.UUID `json:"_id"`
	Todo    string    `json:"todo"`
	Date    time.Time `json:"date"`
	OwnerID uuid.UUID `json:"ownerId"`
}

func NewEventResponse(e calendar.Event) EventResponse {
	return EventResponse{ID: e.ID, Todo: e.Todo, Date: e.Date.UTC(), OwnerID: e.OwnerID}
}

func NewEventListResponse(items []calendar.Event) []EventResponse {
	out := make([]EventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NewEventResponse(e))
	}
	return out
}
