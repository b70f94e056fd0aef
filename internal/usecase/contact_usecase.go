package usecase

import (
	"context"
	"strings"
	"time"

	"applytrack/internal/domain/contact"
	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"

	"github.com/google/uuid"
)

type Contacts struct {
	users    user.Repository
	contacts contact.Repository
	cache    *CollectionCache
	log      *logger.Logger
	now      func() time.Time
}

func NewContactUsecase(users user.Repository, contacts contact.Repository, cache *CollectionCache, log *logger.Logger) *Contacts {
	return &Contacts{users: users, contacts: contacts, cache: cache, log: log, now: time.Now}
}

// AddContact appends a contact to the owner's collection and returns the
// owner alongside the new record.
func (u *Contacts) AddContact(ctx context.Context, identity *user.Identity, ownerID uuid.UUID, in contact.Fields) (user.User, contact.Contact, error) {
	owner, err := AuthorizeOwner(identity, ownerID)
	if err != nil {
		return user.User{}, contact.Contact{}, err
	}
	in, err = cleanContactFields(in)
	if err != nil {
		return user.User{}, contact.Contact{}, err
	}

	usr, err := u.users.GetByID(ctx, owner)
	if err != nil {
		return user.User{}, contact.Contact{}, storageErr(u.log, "contacts.owner", err)
	}

	now := u.now().UTC()
	created, err := u.contacts.Create(ctx, contact.Contact{
		ID:        uuid.New(),
		UserID:    owner,
		Fields:    in,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return user.User{}, contact.Contact{}, storageErr(u.log, "contacts.create", err)
	}

	u.cache.invalidate(ctx, ContactsCacheKey(owner))
	return publicUser(usr), created, nil
}

func (u *Contacts) UpdateContact(ctx context.Context, identity *user.Identity, ownerID, contactID uuid.UUID, in contact.Fields) (contact.Contact, error) {
	owner, err := AuthorizeOwner(identity, ownerID)
	if err != nil {
		return contact.Contact{}, err
	}
	if contactID == uuid.Nil {
		return contact.Contact{}, ErrInvalidInput
	}
	in, err = cleanContactFields(in)
	if err != nil {
		return contact.Contact{}, err
	}

	updated, err := u.contacts.Update(ctx, contact.Contact{
		ID:        contactID,
		UserID:    owner,
		Fields:    in,
		UpdatedAt: u.now().UTC(),
	})
	if err != nil {
		return contact.Contact{}, storageErr(u.log, "contacts.update", err)
	}

	u.cache.invalidate(ctx, ContactsCacheKey(owner))
	return updated, nil
}

// DeleteContact returns the id that was removed. A contact that is already
// gone reports ErrNotFound and leaves the collection as it was. So does a
// contact owned by someone else when ownerID is omitted: the lookup is scoped
// to the caller, so the record is invisible rather than forbidden.
func (u *Contacts) DeleteContact(ctx context.Context, identity *user.Identity, ownerID, contactID uuid.UUID) (uuid.UUID, error) {
	owner, err := AuthorizeOwner(identity, ownerID)
	if err != nil {
		return uuid.Nil, err
	}
	if contactID == uuid.Nil {
		return uuid.Nil, ErrInvalidInput
	}

	if err := u.contacts.Delete(ctx, owner, contactID); err != nil {
		return uuid.Nil, storageErr(u.log, "contacts.delete", err)
	}

	u.cache.invalidate(ctx, ContactsCacheKey(owner))
	return contactID, nil
}

func cleanContactFields(in contact.Fields) (contact.Fields, error) {
	out := contact.Fields{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		CompanyName: strings.TrimSpace(in.CompanyName),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Address1:    strings.TrimSpace(in.Address1),
		Address2:    strings.TrimSpace(in.Address2),
	}
	if out.FirstName == "" && out.LastName == "" && out.CompanyName == "" {
		return contact.Fields{}, ErrInvalidInput
	}
	return out, nil
}
