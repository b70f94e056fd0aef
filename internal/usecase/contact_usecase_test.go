package usecase

import (
	"context"
	"testing"

	"applytrack/internal/domain/contact"
	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"
	"applytrack/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContactFixture(t *testing.T) (*Contacts, *memory.Store, *fakeCache) {
	t.Helper()
	store := memory.NewStore()
	cache := newFakeCache()
	return NewContactUsecase(store.Users(), store.Contacts(), newCollections(cache), logger.Nop()), store, cache
}

var jane = contact.Fields{FirstName: "Jane", LastName: "Doe", Email: "j@x.com"}

func TestAddContact_Unauthenticated_NoSideEffects(t *testing.T) {
	uc, store, cache := newContactFixture(t)
	owner := seedUser(t, store, "a@example.com")

	for _, identity := range []*user.Identity{nil, {}} {
		_, _, err := uc.AddContact(context.Background(), identity, owner.UserID, jane)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}

	list, err := store.Contacts().FindByUserID(context.Background(), owner.UserID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, cache.generation(ContactsCacheKey(owner.UserID)))
}

func TestAddContact_ReturnsOwnerAndRecord(t *testing.T) {
	ctx := context.Background()
	uc, store, cache := newContactFixture(t)
	owner := seedUser(t, store, "a@example.com")

	usr, c, err := uc.AddContact(ctx, owner, uuid.Nil, contact.Fields{FirstName: " Jane ", LastName: "Doe", Email: "j@x.com"})
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, usr.ID)
	assert.Empty(t, usr.PasswordHash)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Jane", c.FirstName)
	assert.Equal(t, int64(1), cache.generation(ContactsCacheKey(owner.UserID)))

	_, c2, err := uc.AddContact(ctx, owner, owner.UserID, jane)
	require.NoError(t, err)
	assert.NotEqual(t, c.ID, c2.ID, "each add creates a fresh record")

	list, err := store.Contacts().FindByUserID(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAddContact_Validation(t *testing.T) {
	uc, store, _ := newContactFixture(t)
	owner := seedUser(t, store, "a@example.com")

	_, _, err := uc.AddContact(context.Background(), owner, uuid.Nil, contact.Fields{Email: "only@x.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddContact_ForeignOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newContactFixture(t)
	a := seedUser(t, store, "a@example.com")
	b := seedUser(t, store, "b@example.com")

	_, _, err := uc.AddContact(ctx, b, a.UserID, jane)
	assert.ErrorIs(t, err, ErrForbidden)

	list, err := store.Contacts().FindByUserID(ctx, a.UserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddContact_OwnerGone(t *testing.T) {
	uc, _, _ := newContactFixture(t)
	ghost := &user.Identity{UserID: uuid.New()}

	_, _, err := uc.AddContact(context.Background(), ghost, uuid.Nil, jane)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteContact_CrossUser(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newContactFixture(t)
	a := seedUser(t, store, "a@example.com")
	b := seedUser(t, store, "b@example.com")

	_, c, err := uc.AddContact(ctx, a, uuid.Nil, jane)
	require.NoError(t, err)

	_, err = uc.DeleteContact(ctx, b, a.UserID, c.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.DeleteContact(ctx, b, uuid.Nil, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := store.Contacts().FindByUserID(ctx, a.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestDeleteContact_Twice(t *testing.T) {
	ctx := context.Background()
	uc, store, cache := newContactFixture(t)
	a := seedUser(t, store, "a@example.com")
	_, c, err := uc.AddContact(ctx, a, uuid.Nil, jane)
	require.NoError(t, err)

	id, err := uc.DeleteContact(ctx, a, a.UserID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, id)
	assert.Equal(t, int64(2), cache.generation(ContactsCacheKey(a.UserID)))

	_, err = uc.DeleteContact(ctx, a, a.UserID, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := store.Contacts().FindByUserID(ctx, a.UserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateContact(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newContactFixture(t)
	a := seedUser(t, store, "a@example.com")
	b := seedUser(t, store, "b@example.com")
	_, c, err := uc.AddContact(ctx, a, uuid.Nil, jane)
	require.NoError(t, err)

	updated, err := uc.UpdateContact(ctx, a, uuid.Nil, c.ID, contact.Fields{FirstName: "Janet", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, "555", updated.Phone)
	assert.Empty(t, updated.LastName)
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)

	_, err = uc.UpdateContact(ctx, b, uuid.Nil, c.ID, jane)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = uc.UpdateContact(ctx, a, uuid.Nil, uuid.Nil, jane)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
