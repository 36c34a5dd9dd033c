// Package rolecache mirrors a user's role string into two browser-storage-like
// tiers: a durable one (Redis) and a session-scoped one (in-process, TTL'd).
// The mirror is advisory only; the signed session token stays the single
// source of truth for authorization decisions. The two tiers are written by
// different flows at different times, so they can drift. Callers must treat
// a cached role as a UI hint, never as a grant.
package rolecache

import (
	"context"
)

// Tier is one storage location for the cached role. Get returns "" when no
// role is recorded.
type Tier interface {
	Get(ctx context.Context, userKey string) (string, error)
	Set(ctx context.Context, userKey, role string) error
	Clear(ctx context.Context, userKey string) error
}

// Cache layers the durable tier over the session tier. Durable wins when both
// hold a value.
type Cache struct {
	durable Tier
	session Tier
}

func New(durable, session Tier) *Cache {
	return &Cache{durable: durable, session: session}
}

// Get returns the cached role, preferring the durable tier. A tier error is
// treated as a miss: the caller falls through to the next tier rather than
// failing the read.
func (c *Cache) Get(ctx context.Context, userKey string) string {
	if c.durable != nil {
		if role, err := c.durable.Get(ctx, userKey); err == nil && role != "" {
			return role
		}
	}
	if c.session != nil {
		if role, err := c.session.Get(ctx, userKey); err == nil && role != "" {
			return role
		}
	}
	return ""
}

// Set mirrors the role into both tiers. Last writer wins; there is no
// transactional tie to the session cookie.
func (c *Cache) Set(ctx context.Context, userKey, role string) error {
	var firstErr error
	if c.durable != nil {
		if err := c.durable.Set(ctx, userKey, role); err != nil {
			firstErr = err
		}
	}
	if c.session != nil {
		if err := c.session.Set(ctx, userKey, role); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Clear drops the role from both tiers (logout).
func (c *Cache) Clear(ctx context.Context, userKey string) {
	if c.durable != nil {
		_ = c.durable.Clear(ctx, userKey)
	}
	if c.session != nil {
		_ = c.session.Clear(ctx, userKey)
	}
}
