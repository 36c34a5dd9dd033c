package rolecache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisTier is the durable tier. Entries carry no TTL; they survive until an
// explicit Clear, mirroring persistent local storage.
type RedisTier struct {
	client *redis.Client
}

func NewRedisTier(client *redis.Client) *RedisTier {
	return &RedisTier{client: client}
}

func (t *RedisTier) key(userKey string) string {
	return fmt.Sprintf("rolecache:%s", userKey)
}

func (t *RedisTier) Get(ctx context.Context, userKey string) (string, error) {
	role, err := t.client.Get(ctx, t.key(userKey)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (t *RedisTier) Set(ctx context.Context, userKey, role string) error {
	return t.client.Set(ctx, t.key(userKey), role, 0).Err()
}

func (t *RedisTier) Clear(ctx context.Context, userKey string) error {
	return t.client.Del(ctx, t.key(userKey)).Err()
}
