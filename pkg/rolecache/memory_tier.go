package rolecache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryTier is the session tier. Entries expire with the session TTL, so a
// value here means "set during this sitting".
type MemoryTier struct {
	store *gocache.Cache
}

func NewMemoryTier(ttl time.Duration) *MemoryTier {
	return &MemoryTier{store: gocache.New(ttl, 10*time.Minute)}
}

func (t *MemoryTier) Get(_ context.Context, userKey string) (string, error) {
	if v, found := t.store.Get(userKey); found {
		if role, ok := v.(string); ok {
			return role, nil
		}
	}
	return "", nil
}

func (t *MemoryTier) Set(_ context.Context, userKey, role string) error {
	t.store.SetDefault(userKey, role)
	return nil
}

func (t *MemoryTier) Clear(_ context.Context, userKey string) error {
	t.store.Delete(userKey)
	return nil
}
