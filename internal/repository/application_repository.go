package repository

import (
	"context"

	"applytrack/internal/database"
	"applytrack/internal/database/postgres"
	"applytrack/internal/domain/application"
	"applytrack/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, user_id, contact_name, position, company_name, applied_on, created_at, updated_at`

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	err := row.Scan(&a.ID, &a.UserID, &a.ContactName, &a.Position, &a.CompanyName, &a.AppliedOn, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresApplicationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications
		 WHERE user_id = $1
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	created, err := scanApplication(r.db.QueryRow(ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+applicationColumns,
		a.ID, a.UserID, a.ContactName, a.Position, a.CompanyName, a.AppliedOn, a.CreatedAt, a.UpdatedAt,
	))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return application.Application{}, user.ErrNotFound
		}
		return application.Application{}, err
	}
	return created, nil
}

func (r *PostgresApplicationRepository) Update(ctx context.Context, a application.Application) (application.Application, error) {
	updated, err := scanApplication(r.db.QueryRow(ctx,
		`UPDATE applications
		 SET contact_name = $1, position = $2, company_name = $3, applied_on = $4, updated_at = $5
		 WHERE user_id = $6 AND id = $7
		 RETURNING `+applicationColumns,
		a.ContactName, a.Position, a.CompanyName, a.AppliedOn, a.UpdatedAt,
		a.UserID, a.ID,
	))
	if err != nil {
		if postgres.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return updated, nil
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM applications WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}
