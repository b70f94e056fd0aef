package usecase

import (
	"context"
	"strings"

	"applytrack/internal/domain/application"
	"applytrack/internal/domain/calendar"
	"applytrack/internal/domain/contact"
	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"

	"github.com/google/uuid"
)

type QueryRepositories struct {
	Users        user.Repository
	Contacts     contact.Repository
	Applications application.Repository
	Pictures     user.ProfilePictureRepository
	Events       calendar.Repository
}

// Query is the read side. The owner id lookups are open to any caller;
// only Calendars requires an identity.
type Query struct {
	repos QueryRepositories
	cache *CollectionCache
	log   *logger.Logger
}

func NewQueryUsecase(repos QueryRepositories, cache *CollectionCache, log *logger.Logger) *Query {
	return &Query{repos: repos, cache: cache, log: log}
}

func (u *Query) Users(ctx context.Context) ([]user.User, error) {
	users, err := u.repos.Users.List(ctx)
	if err != nil {
		return nil, storageErr(u.log, "users.list", err)
	}
	for i := range users {
		users[i] = publicUser(users[i])
	}
	return users, nil
}

func (u *Query) UserByEmail(ctx context.Context, email string) (user.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return user.User{}, ErrInvalidInput
	}
	usr, err := u.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, storageErr(u.log, "users.by_email", err)
	}
	return publicUser(usr), nil
}

func (u *Query) Contacts(ctx context.Context, ownerID uuid.UUID) ([]contact.Contact, error) {
	return readThrough(ctx, u, ContactsCacheKey(ownerID), ownerID, u.repos.Contacts.FindByUserID)
}

func (u *Query) Applications(ctx context.Context, ownerID uuid.UUID) ([]application.Application, error) {
	return readThrough(ctx, u, ApplicationsCacheKey(ownerID), ownerID, u.repos.Applications.FindByUserID)
}

type cachedPicture struct {
	Picture *user.ProfilePicture `json:"picture"`
}

// ProfilePicture returns nil when the owner exists but never set one.
func (u *Query) ProfilePicture(ctx context.Context, ownerID uuid.UUID) (*user.ProfilePicture, error) {
	got, err := readThrough(ctx, u, ProfilePictureCacheKey(ownerID), ownerID, func(ctx context.Context, id uuid.UUID) (cachedPicture, error) {
		p, err := u.repos.Pictures.FindByUserID(ctx, id)
		return cachedPicture{Picture: p}, err
	})
	if err != nil {
		return nil, err
	}
	return got.Picture, nil
}

func (u *Query) Calendars(ctx context.Context, identity *user.Identity) ([]calendar.Event, error) {
	if err := Authorize(identity); err != nil {
		return nil, err
	}
	events, err := u.repos.Events.FindByOwnerID(ctx, identity.UserID)
	if err != nil {
		return nil, storageErr(u.log, "calendar.list", err)
	}
	return events, nil
}

func readThrough[T any](ctx context.Context, u *Query, collection string, ownerID uuid.UUID, load func(context.Context, uuid.UUID) (T, error)) (T, error) {
	var zero T
	if ownerID == uuid.Nil {
		return zero, ErrInvalidInput
	}

	key, cacheable := u.cache.snapshot(ctx, collection)
	if cacheable {
		var cached T
		if u.cache.get(ctx, key, &cached) {
			u.log.Debug("query cache hit", "key", key)
			return cached, nil
		}
	}

	exists, err := u.repos.Users.ExistsByID(ctx, ownerID)
	if err != nil {
		return zero, storageErr(u.log, "users.exists", err)
	}
	if !exists {
		return zero, ErrNotFound
	}

	out, err := load(ctx, ownerID)
	if err != nil {
		return zero, storageErr(u.log, collection, err)
	}

	if cacheable {
		u.cache.set(ctx, key, out)
	}
	return out, nil
}
