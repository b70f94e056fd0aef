// Package memory holds process-local repositories backed by one mutex-guarded
// store. They mirror the Postgres repositories, including the cascade from a
// user to the rows it owns, and back tests and STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"applytrack/internal/domain/application"
	"applytrack/internal/domain/calendar"
	"applytrack/internal/domain/contact"
	"applytrack/internal/domain/user"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.RWMutex
	users        []user.User
	contacts     map[uuid.UUID][]contact.Contact
	applications map[uuid.UUID][]application.Application
	pictures     map[uuid.UUID]user.ProfilePicture
	events       []calendar.Event
}

func NewStore() *Store {
	return &Store{
		contacts:     map[uuid.UUID][]contact.Contact{},
		applications: map[uuid.UUID][]application.Application{},
		pictures:     map[uuid.UUID]user.ProfilePicture{},
	}
}

func (s *Store) Users() *UserRepository                     { return &UserRepository{s: s} }
func (s *Store) Contacts() *ContactRepository               { return &ContactRepository{s: s} }
func (s *Store) Applications() *ApplicationRepository       { return &ApplicationRepository{s: s} }
func (s *Store) ProfilePictures() *ProfilePictureRepository { return &ProfilePictureRepository{s: s} }
func (s *Store) Calendar() *CalendarRepository              { return &CalendarRepository{s: s} }

// caller holds s.mu.
func (s *Store) userIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.users, func(u user.User) bool { return u.ID == id })
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	r.s.users = append(r.s.users, u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.userIndex(id)
	if i < 0 {
		return user.User{}, user.ErrNotFound
	}
	return r.s.users[i], nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.userIndex(id) >= 0, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return slices.Clone(r.s.users), nil
}

// Delete removes the user together with everything it owns.
func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.userIndex(id)
	if i < 0 {
		return user.ErrNotFound
	}
	r.s.users = slices.Delete(r.s.users, i, i+1)
	delete(r.s.contacts, id)
	delete(r.s.applications, id)
	delete(r.s.pictures, id)
	r.s.events = slices.DeleteFunc(r.s.events, func(e calendar.Event) bool { return e.OwnerID == id })
	return nil
}

type ContactRepository struct{ s *Store }

func (r *ContactRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]contact.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := slices.Clone(r.s.contacts[userID])
	if out == nil {
		out = []contact.Contact{}
	}
	return out, nil
}

func (r *ContactRepository) Create(_ context.Context, c contact.Contact) (contact.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.userIndex(c.UserID) < 0 {
		return contact.Contact{}, user.ErrNotFound
	}
	r.s.contacts[c.UserID] = append(slices.Clone(r.s.contacts[c.UserID]), c)
	return c, nil
}

func (r *ContactRepository) Update(_ context.Context, c contact.Contact) (contact.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := r.s.contacts[c.UserID]
	i := slices.IndexFunc(list, func(x contact.Contact) bool { return x.ID == c.ID })
	if i < 0 {
		return contact.Contact{}, contact.ErrNotFound
	}
	c.CreatedAt = list[i].CreatedAt
	list[i] = c
	return c, nil
}

func (r *ContactRepository) Delete(_ context.Context, userID uuid.UUID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := r.s.contacts[userID]
	i := slices.IndexFunc(list, func(x contact.Contact) bool { return x.ID == id })
	if i < 0 {
		return contact.ErrNotFound
	}
	r.s.contacts[userID] = slices.Delete(slices.Clone(list), i, i+1)
	return nil
}

type ApplicationRepository struct{ s *Store }

func (r *ApplicationRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := slices.Clone(r.s.applications[userID])
	if out == nil {
		out = []application.Application{}
	}
	return out, nil
}

func (r *ApplicationRepository) Create(_ context.Context, a application.Application) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.userIndex(a.UserID) < 0 {
		return application.Application{}, user.ErrNotFound
	}
	r.s.applications[a.UserID] = append(slices.Clone(r.s.applications[a.UserID]), a)
	return a, nil
}

func (r *ApplicationRepository) Update(_ context.Context, a application.Application) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := r.s.applications[a.UserID]
	i := slices.IndexFunc(list, func(x application.Application) bool { return x.ID == a.ID })
	if i < 0 {
		return application.Application{}, application.ErrNotFound
	}
	a.CreatedAt = list[i].CreatedAt
	list[i] = a
	return a, nil
}

func (r *ApplicationRepository) Delete(_ context.Context, userID uuid.UUID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := r.s.applications[userID]
	i := slices.IndexFunc(list, func(x application.Application) bool { return x.ID == id })
	if i < 0 {
		return application.ErrNotFound
	}
	r.s.applications[userID] = slices.Delete(slices.Clone(list), i, i+1)
	return nil
}

type ProfilePictureRepository struct{ s *Store }

func (r *ProfilePictureRepository) Upsert(_ context.Context, p user.ProfilePicture) (user.ProfilePicture, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.userIndex(p.UserID) < 0 {
		return user.ProfilePicture{}, user.ErrNotFound
	}
	r.s.pictures[p.UserID] = p
	return p, nil
}

func (r *ProfilePictureRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*user.ProfilePicture, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pictures[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type CalendarRepository struct{ s *Store }

func (r *CalendarRepository) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]calendar.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]calendar.Event, 0)
	for _, e := range r.s.events {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b calendar.Event) int { return a.Date.Compare(b.Date) })
	return out, nil
}

func (r *CalendarRepository) Create(_ context.Context, e calendar.Event) (calendar.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.userIndex(e.OwnerID) < 0 {
		return calendar.Event{}, user.ErrNotFound
	}
	r.s.events = append(r.s.events, e)
	return e, nil
}

func (r *CalendarRepository) Update(_ context.Context, e calendar.Event) (calendar.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.events, func(x calendar.Event) bool { return x.ID == e.ID && x.OwnerID == e.OwnerID })
	if i < 0 {
		return calendar.Event{}, calendar.ErrNotFound
	}
	e.CreatedAt = r.s.events[i].CreatedAt
	r.s.events[i] = e
	return e, nil
}

func (r *CalendarRepository) Delete(_ context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.events, func(x calendar.Event) bool { return x.ID == id && x.OwnerID == ownerID })
	if i < 0 {
		return calendar.ErrNotFound
	}
	r.s.events = slices.Delete(r.s.events, i, i+1)
	return nil
}

var (
	_ user.Repository               = (*UserRepository)(nil)
	_ user.ProfilePictureRepository = (*ProfilePictureRepository)(nil)
	_ contact.Repository            = (*ContactRepository)(nil)
	_ application.Repository        = (*ApplicationRepository)(nil)
	_ calendar.Repository           = (*CalendarRepository)(nil)
)
