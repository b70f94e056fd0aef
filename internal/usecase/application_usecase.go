package usecase

import (
	"context"
	"strings"
	"time"

	"applytrack/internal/domain/application"
	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"

	"github.com/google/uuid"
)

type Applications struct {
	users        user.Repository
	applications application.Repository
	cache        *CollectionCache
	log          *logger.Logger
	now          func() time.Time
}

func NewApplicationUsecase(users user.Repository, applications application.Repository, cache *CollectionCache, log *logger.Logger) *Applications {
	return &Applications{users: users, applications: applications, cache: cache, log: log, now: time.Now}
}

func (u *Applications) AddApplication(ctx context.Context, identity *user.Identity, ownerID uuid.UUID, in application.Fields) (user.User, application.Application, error) {
	owner, err := AuthorizeOwner(identity, ownerID)
	if err != nil {
		return user.User{}, application.Application{}, err
	}
	in, err = cleanApplicationFields(in)
	if err != nil {
		return user.User{}, application.Application{}, err
	}

	usr, err := u.users.GetByID(ctx, owner)
	if err != nil {
		return user.User{}, application.Application{}, storageErr(u.log, "applications.owner", err)
	}

	now := u.now().UTC()
	created, err := u.applications.Create(ctx, application.Application{
		ID:        uuid.New(),
		UserID:    owner,
		Fields:    in,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return user.User{}, application.Application{}, storageErr(u.log, "applications.create", err)
	}

	u.cache.invalidate(ctx, ApplicationsCacheKey(owner))
	return publicUser(usr), created, nil
}

func (u *Applications) UpdateApplication(ctx context.Context, identity *user.Identity, ownerID, applicationID uuid.UUID, in application.Fields) (application.Application, error) {
	owner, err := AuthorizeOwner(identity, ownerID)
	if err != nil {
		return application.Application{}, err
	}
	if applicationID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}
	in, err = cleanApplicationFields(in)
	if err != nil {
		return application.Application{}, err
	}

	updated, err := u.applications.Update(ctx, application.Application{
		ID:        applicationID,
		UserID:    owner,
		Fields:    in,
		UpdatedAt: u.now().UTC(),
	})
	if err != nil {
		return application.Application{}, storageErr(u.log, "applications.update", err)
	}

	u.cache.invalidate(ctx, ApplicationsCacheKey(owner))
	return updated, nil
}

// DeleteApplication mirrors DeleteContact: an application outside the
// caller's collection reports ErrNotFound.
func (u *Applications) DeleteApplication(ctx context.Context, identity *user.Identity, ownerID, applicationID uuid.UUID) (uuid.UUID, error) {
	owner, err := AuthorizeOwner(identity, ownerID)
	if err != nil {
		return uuid.Nil, err
	}
	if applicationID == uuid.Nil {
		return uuid.Nil, ErrInvalidInput
	}

	if err := u.applications.Delete(ctx, owner, applicationID); err != nil {
		return uuid.Nil, storageErr(u.log, "applications.delete", err)
	}

	u.cache.invalidate(ctx, ApplicationsCacheKey(owner))
	return applicationID, nil
}

// appliedOn is kept verbatim; clients send whatever their date picker emits.
func cleanApplicationFields(in application.Fields) (application.Fields, error) {
	out := application.Fields{
		ContactName: strings.TrimSpace(in.ContactName),
		Position:    strings.TrimSpace(in.Position),
		CompanyName: strings.TrimSpace(in.CompanyName),
		AppliedOn:   strings.TrimSpace(in.AppliedOn),
	}
	if out.Position == "" && out.CompanyName == "" {
		return application.Fields{}, ErrInvalidInput
	}
	return out, nil
}
