package repository

import (
	"context"

	"applytrack/internal/database"
	"applytrack/internal/database/postgres"
	"applytrack/internal/domain/contact"
	"applytrack/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresContactRepository struct {
	db database.DB
}

func NewPostgresContactRepository(db database.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

const contactColumns = `id, user_id, first_name, last_name, company_name, email, phone, address1, address2, created_at, updated_at`

func scanContact(row database.Row) (contact.Contact, error) {
	var c contact.Contact
	err := row.Scan(
		&c.ID, &c.UserID,
		&c.FirstName, &c.LastName, &c.CompanyName, &c.Email, &c.Phone, &c.Address1, &c.Address2,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *PostgresContactRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]contact.Contact, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+contactColumns+`
		 FROM contacts
		 WHERE user_id = $1
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]contact.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresContactRepository) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	created, err := scanContact(r.db.QueryRow(ctx,
		`INSERT INTO contacts (`+contactColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+contactColumns,
		c.ID, c.UserID,
		c.FirstName, c.LastName, c.CompanyName, c.Email, c.Phone, c.Address1, c.Address2,
		c.CreatedAt, c.UpdatedAt,
	))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return contact.Contact{}, user.ErrNotFound
		}
		return contact.Contact{}, err
	}
	return created, nil
}

func (r *PostgresContactRepository) Update(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	updated, err := scanContact(r.db.QueryRow(ctx,
		`UPDATE contacts
		 SET first_name = $1, last_name = $2, company_name = $3, email = $4, phone = $5,
		     address1 = $6, address2 = $7, updated_at = $8
		 WHERE user_id = $9 AND id = $10
		 RETURNING `+contactColumns,
		c.FirstName, c.LastName, c.CompanyName, c.Email, c.Phone, c.Address1, c.Address2, c.UpdatedAt,
		c.UserID, c.ID,
	))
	if err != nil {
		if postgres.IsNoRows(err) {
			return contact.Contact{}, contact.ErrNotFound
		}
		return contact.Contact{}, err
	}
	return updated, nil
}

func (r *PostgresContactRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return contact.ErrNotFound
	}
	return nil
}
