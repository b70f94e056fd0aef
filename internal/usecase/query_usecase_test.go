package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"applytrack/internal/domain/contact"
	"applytrack/internal/pkg/logger"
	"applytrack/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newQueryFixture(store *memory.Store, cache *CollectionCache) *Query {
	return NewQueryUsecase(QueryRepositories{
		Users:        store.Users(),
		Contacts:     store.Contacts(),
		Applications: store.Applications(),
		Pictures:     store.ProfilePictures(),
		Events:       store.Calendar(),
	}, cache, logger.Nop())
}

func TestQuery_ContactsReadThrough(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cache := newFakeCache()
	collections := newCollections(cache)
	q := newQueryFixture(store, collections)
	contacts := NewContactUsecase(store.Users(), store.Contacts(), collections, logger.Nop())
	a := seedUser(t, store, "a@example.com")

	_, c, err := contacts.AddContact(ctx, a, uuid.Nil, jane)
	require.NoError(t, err)

	first, err := q.Contacts(ctx, a.UserID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, c.ID, first[0].ID)
	assert.Equal(t, "Jane", first[0].FirstName)
	assert.True(t, cache.has(entryKey(ContactsCacheKey(a.UserID), 1)))

	second, err := q.Contacts(ctx, a.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first[0].ID, second[0].ID)

	_, _, err = contacts.AddContact(ctx, a, uuid.Nil, contact.Fields{CompanyName: "Acme"})
	require.NoError(t, err)

	third, err := q.Contacts(ctx, a.UserID)
	require.NoError(t, err)
	assert.Len(t, third, 2, "mutation must invalidate the cached list")
}

func TestQuery_LoadOverlappingAddIsNotServed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cache := newFakeCache()
	collections := newCollections(cache)
	q := newQueryFixture(store, collections)
	contacts := NewContactUsecase(store.Users(), store.Contacts(), collections, logger.Nop())
	a := seedUser(t, store, "a@example.com")

	_, _, err := contacts.AddContact(ctx, a, uuid.Nil, jane)
	require.NoError(t, err)

	reached := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	cache.onSet = func(string) {
		once.Do(func() {
			close(reached)
			<-release
		})
	}

	type result struct {
		list []contact.Contact
		err  error
	}
	done := make(chan result, 1)
	go func() {
		list, err := q.Contacts(ctx, a.UserID)
		done <- result{list, err}
	}()

	<-reached
	_, _, err = contacts.AddContact(ctx, a, uuid.Nil, contact.Fields{CompanyName: "Acme"})
	require.NoError(t, err)
	close(release)

	stale := <-done
	require.NoError(t, stale.err)
	assert.Len(t, stale.list, 1)

	fresh, err := q.Contacts(ctx, a.UserID)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestQuery_FailedInvalidationBypassesCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cache := newFakeCache()
	core, logs := observer.New(zapcore.WarnLevel)
	collections := NewCollectionCache(cache, time.Minute, logger.FromZap(zap.New(core)))
	q := newQueryFixture(store, collections)
	contacts := NewContactUsecase(store.Users(), store.Contacts(), collections, logger.Nop())
	a := seedUser(t, store, "a@example.com")
	key := ContactsCacheKey(a.UserID)

	_, _, err := contacts.AddContact(ctx, a, uuid.Nil, jane)
	require.NoError(t, err)
	warm, err := q.Contacts(ctx, a.UserID)
	require.NoError(t, err)
	require.Len(t, warm, 1)
	require.True(t, cache.has(entryKey(key, 1)))

	cache.setIncrErr(errors.New("connection reset"))
	_, _, err = contacts.AddContact(ctx, a, uuid.Nil, contact.Fields{CompanyName: "Acme"})
	require.NoError(t, err, "a cache outage must not fail the mutation")
	assert.Equal(t, 1, logs.FilterMessage("query cache invalidation failed").Len())

	got, err := q.Contacts(ctx, a.UserID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), cache.generation(key))

	cache.setIncrErr(nil)
	got, err = q.Contacts(ctx, a.UserID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), cache.generation(key))
	assert.True(t, cache.has(entryKey(key, 2)))

	hitsBefore := cache.hits
	got, err = q.Contacts(ctx, a.UserID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Greater(t, cache.hits, hitsBefore)
}

func TestQuery_UnknownOwner(t *testing.T) {
	ctx := context.Background()
	q := newQueryFixture(memory.NewStore(), nil)

	_, err := q.Contacts(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = q.Applications(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = q.ProfilePicture(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = q.Contacts(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestQuery_EmptyCollectionsAreNotNil(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	q := newQueryFixture(store, nil)
	a := seedUser(t, store, "a@example.com")

	list, err := q.Applications(ctx, a.UserID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	pic, err := q.ProfilePicture(ctx, a.UserID)
	require.NoError(t, err)
	assert.Nil(t, pic)
}

func TestQuery_ProfilePictureAfterUpsert(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	collections := newCollections(newFakeCache())
	q := newQueryFixture(store, collections)
	pictures := NewProfilePictureUsecase(store.Users(), store.ProfilePictures(), collections, logger.Nop())
	a := seedUser(t, store, "a@example.com")
	b := seedUser(t, store, "b@example.com")

	none, err := q.ProfilePicture(ctx, a.UserID)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, _, err = pictures.SetProfilePicture(ctx, b, a.UserID, "https://img/x.png")
	assert.ErrorIs(t, err, ErrForbidden)
	_, _, err = pictures.SetProfilePicture(ctx, a, uuid.Nil, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	usr, pic, err := pictures.SetProfilePicture(ctx, a, uuid.Nil, "https://img/1.png")
	require.NoError(t, err)
	assert.Equal(t, a.UserID, usr.ID)
	assert.Equal(t, "https://img/1.png", pic.PictureURL)

	_, _, err = pictures.SetProfilePicture(ctx, a, uuid.Nil, "https://img/2.png")
	require.NoError(t, err)

	got, err := q.ProfilePicture(ctx, a.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://img/2.png", got.PictureURL)
}

func TestQuery_UsersAndCalendars(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	q := newQueryFixture(store, nil)
	a := seedUser(t, store, "a@example.com")
	b := seedUser(t, store, "b@example.com")

	users, err := q.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}

	got, err := q.UserByEmail(ctx, "B@example.com")
	require.NoError(t, err)
	assert.Equal(t, b.UserID, got.ID)
	_, err = q.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	cal := NewCalendarUsecase(store.Calendar(), logger.Nop())
	_, err = cal.AddCalendarEvent(ctx, a, EventInput{Todo: "a's", Date: "2024-05-01"})
	require.NoError(t, err)
	_, err = cal.AddCalendarEvent(ctx, b, EventInput{Todo: "b's", Date: "2024-05-01"})
	require.NoError(t, err)

	_, err = q.Calendars(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	events, err := q.Calendars(ctx, a)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "a's", events[0].Todo)
}
