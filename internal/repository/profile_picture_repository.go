package repository

import (
	"context"

	"applytrack/internal/database"
	"applytrack/internal/database/postgres"
	"applytrack/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresProfilePictureRepository struct {
	db database.DB
}

func NewPostgresProfilePictureRepository(db database.DB) *PostgresProfilePictureRepository {
	return &PostgresProfilePictureRepository{db: db}
}

func (r *PostgresProfilePictureRepository) Upsert(ctx context.Context, p user.ProfilePicture) (user.ProfilePicture, error) {
	var out user.ProfilePicture
	err := r.db.QueryRow(ctx,
		`INSERT INTO profile_pictures (user_id, picture_url, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET picture_url = EXCLUDED.picture_url, updated_at = EXCLUDED.updated_at
		 RETURNING user_id, picture_url, updated_at`,
		p.UserID, p.PictureURL, p.UpdatedAt,
	).Scan(&out.UserID, &out.PictureURL, &out.UpdatedAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return user.ProfilePicture{}, user.ErrNotFound
		}
		return user.ProfilePicture{}, err
	}
	return out, nil
}

func (r *PostgresProfilePictureRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*user.ProfilePicture, error) {
	var p user.ProfilePicture
	err := r.db.QueryRow(ctx,
		`SELECT user_id, picture_url, updated_at FROM profile_pictures WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.PictureURL, &p.UpdatedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
