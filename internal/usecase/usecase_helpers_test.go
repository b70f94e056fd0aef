package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"applytrack/internal/domain/user"
	"applytrack/internal/pkg/logger"
	"applytrack/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	// hits counts collection entries, not generation counters.
	hits    int
	incrErr error
	// onSet runs before a value is stored, outside the lock.
	onSet func(key string)
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func newCollections(c *fakeCache) *CollectionCache {
	return NewCollectionCache(c, time.Minute, logger.Nop())
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if !strings.HasSuffix(key, ":gen") {
		c.hits++
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	hook := c.onSet
	c.mu.Unlock()
	if hook != nil {
		hook(key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.incrErr != nil {
		return 0, c.incrErr
	}
	var n int64
	if b, ok := c.data[key]; ok {
		if err := json.Unmarshal(b, &n); err != nil {
			return 0, err
		}
	}
	n++
	c.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (c *fakeCache) setIncrErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.incrErr = err
}

func (c *fakeCache) generation(collection string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if b, ok := c.data[generationKey(collection)]; ok {
		_ = json.Unmarshal(b, &n)
	}
	return n
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func seedUser(t *testing.T, store *memory.Store, email string) *user.Identity {
	t.Helper()
	now := time.Now().UTC()
	u := user.User{ID: uuid.New(), FirstName: "Test", Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return &user.Identity{UserID: u.ID, Email: u.Email}
}
