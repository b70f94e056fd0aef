package repository

import (
	"context"

	"applytrack/internal/database"
	"applytrack/internal/database/postgres"
	"applytrack/internal/domain/calendar"
	"applytrack/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresCalendarRepository struct {
	db database.DB
}

func NewPostgresCalendarRepository(db database.DB) *PostgresCalendarRepository {
	return &PostgresCalendarRepository{db: db}
}

const eventColumns = `id, owner_id, todo, event_date, created_at, updated_at`

func scanEvent(row database.Row) (calendar.Event, error) {
	var e calendar.Event
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Todo, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return calendar.Event{}, err
	}
	e.Date = e.Date.UTC()
	return e, nil
}

func (r *PostgresCalendarRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]calendar.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM calendar_events
		 WHERE owner_id = $1
		 ORDER BY event_date ASC, id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]calendar.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCalendarRepository) Create(ctx context.Context, e calendar.Event) (calendar.Event, error) {
	created, err := scanEvent(r.db.QueryRow(ctx,
		`INSERT INTO calendar_events (`+eventColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+eventColumns,
		e.ID, e.OwnerID, e.Todo, e.Date, e.CreatedAt, e.UpdatedAt,
	))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return calendar.Event{}, user.ErrNotFound
		}
		return calendar.Event{}, err
	}
	return created, nil
}

func (r *PostgresCalendarRepository) Update(ctx context.Context, e calendar.Event) (calendar.Event, error) {
	updated, err := scanEvent(r.db.QueryRow(ctx,
		`UPDATE calendar_events
		 SET todo = $1, event_date = $2, updated_at = $3
		 WHERE owner_id = $4 AND id = $5
		 RETURNING `+eventColumns,
		e.Todo, e.Date, e.UpdatedAt, e.OwnerID, e.ID,
	))
	if err != nil {
		if postgres.IsNoRows(err) {
			return calendar.Event{}, calendar.ErrNotFound
		}
		return calendar.Event{}, err
	}
	return updated, nil
}

func (r *PostgresCalendarRepository) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM calendar_events WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return calendar.ErrNotFound
	}
	return nil
}
