package usecase

import (
	"context"
	"testing"
	"time"

	"applytrack/internal/pkg/logger"
	"applytrack/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := NewCalendarUsecase(store.Calendar(), logger.Nop())
	a := seedUser(t, store, "a@example.com")
	b := seedUser(t, store, "b@example.com")

	_, err := uc.AddCalendarEvent(ctx, nil, EventInput{Todo: "call", Date: "2024-05-01"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = uc.AddCalendarEvent(ctx, a, EventInput{Todo: "call", Date: "someday"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.AddCalendarEvent(ctx, a, EventInput{Todo: "  ", Date: "2024-05-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	e, err := uc.AddCalendarEvent(ctx, a, EventInput{Todo: "call Jo", Date: "2024-05-01T10:00:00+02:00"})
	require.NoError(t, err)
	assert.Equal(t, a.UserID, e.OwnerID)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), e.Date)

	_, err = uc.EditCalendarEvent(ctx, b, e.ID, EventInput{Todo: "hijack", Date: "2024-05-02"})
	assert.ErrorIs(t, err, ErrNotFound)

	edited, err := uc.EditCalendarEvent(ctx, a, e.ID, EventInput{Todo: "email Jo", Date: float64(1714608000000)})
	require.NoError(t, err)
	assert.Equal(t, "email Jo", edited.Todo)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), edited.Date)

	_, err = uc.DeleteEvent(ctx, b, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	id, err := uc.DeleteEvent(ctx, a, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, id)

	_, err = uc.DeleteEvent(ctx, a, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.DeleteEvent(ctx, a, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
