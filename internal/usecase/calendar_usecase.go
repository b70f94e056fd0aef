package usecase

import (
	"context"
	"strings"
	"time"

	"applytrack/internal/domain/calendar"
	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"

	"github.com/google/uuid"
)

// EventInput carries the raw date as decoded from the request; see NormalizeDate.
type EventInput struct {
	Todo string
	Date any
}

type Calendar struct {
	events calendar.Repository
	log    *logger.Logger
	now    func() time.Time
}

func NewCalendarUsecase(events calendar.Repository, log *logger.Logger) *Calendar {
	return &Calendar{events: events, log: log, now: time.Now}
}

func (u *Calendar) AddCalendarEvent(ctx context.Context, identity *user.Identity, in EventInput) (calendar.Event, error) {
	if err := Authorize(identity); err != nil {
		return calendar.Event{}, err
	}
	todo, date, err := cleanEventInput(in)
	if err != nil {
		return calendar.Event{}, err
	}

	now := u.now().UTC()
	created, err := u.events.Create(ctx, calendar.Event{
		ID:        uuid.New(),
		OwnerID:   identity.UserID,
		Todo:      todo,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return calendar.Event{}, storageErr(u.log, "calendar.create", err)
	}
	return created, nil
}

func (u *Calendar) EditCalendarEvent(ctx context.Context, identity *user.Identity, eventID uuid.UUID, in EventInput) (calendar.Event, error) {
	if err := Authorize(identity); err != nil {
		return calendar.Event{}, err
	}
	if eventID == uuid.Nil {
		return calendar.Event{}, ErrInvalidInput
	}
	todo, date, err := cleanEventInput(in)
	if err != nil {
		return calendar.Event{}, err
	}

	updated, err := u.events.Update(ctx, calendar.Event{
		ID:        eventID,
		OwnerID:   identity.UserID,
		Todo:      todo,
		Date:      date,
		UpdatedAt: u.now().UTC(),
	})
	if err != nil {
		return calendar.Event{}, storageErr(u.log, "calendar.update", err)
	}
	return updated, nil
}

func (u *Calendar) DeleteEvent(ctx context.Context, identity *user.Identity, eventID uuid.UUID) (uuid.UUID, error) {
	if err := Authorize(identity); err != nil {
		return uuid.Nil, err
	}
	if eventID == uuid.Nil {
		return uuid.Nil, ErrInvalidInput
	}
	if err := u.events.Delete(ctx, identity.UserID, eventID); err != nil {
		return uuid.Nil, storageErr(u.log, "calendar.delete", err)
	}
	return eventID, nil
}

func cleanEventInput(in EventInput) (string, time.Time, error) {
	todo := strings.TrimSpace(in.Todo)
	if todo == "" {
		return "", time.Time{}, ErrInvalidInput
	}
	date, err := NormalizeDate(in.Date)
	if err != nil {
		return "", time.Time{}, err
	}
	return todo, date, nil
}
