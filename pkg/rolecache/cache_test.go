package rolecache

import (
	"context"
	"testing"
	"time"
)

func newTwoTier() (*Cache, *MemoryTier, *MemoryTier) {
	durable := NewMemoryTier(time.Hour)
	session := NewMemoryTier(time.Minute)
	return New(durable, session), durable, session
}

func TestGetPrefersDurableTier(t *testing.T) {
	ctx := context.Background()
	cache, durable, session := newTwoTier()

	// The tiers drifted: an old session value survives next to a newer
	// durable one.
	if err := session.Set(ctx, "u1", "student"); err != nil {
		t.Fatal(err)
	}
	if err := durable.Set(ctx, "u1", "teacher"); err != nil {
		t.Fatal(err)
	}

	if got := cache.Get(ctx, "u1"); got != "teacher" {
		t.Errorf("Get = %q, want durable value %q", got, "teacher")
	}
}

func TestGetFallsBackToSessionTier(t *testing.T) {
	ctx := context.Background()
	cache, _, session := newTwoTier()

	if err := session.Set(ctx, "u1", "student"); err != nil {
		t.Fatal(err)
	}

	if got := cache.Get(ctx, "u1"); got != "student" {
		t.Errorf("Get = %q, want %q", got, "student")
	}
}

func TestGetEmptyWhenBothMiss(t *testing.T) {
	cache, _, _ := newTwoTier()
	if got := cache.Get(context.Background(), "nobody"); got != "" {
		t.Errorf("Get = %q, want empty", got)
	}
}

func TestSetWritesBothTiers(t *testing.T) {
	ctx := context.Background()
	cache, durable, session := newTwoTier()

	if err := cache.Set(ctx, "u1", "teacher"); err != nil {
		t.Fatal(err)
	}

	if got, _ := durable.Get(ctx, "u1"); got != "teacher" {
		t.Errorf("durable tier = %q, want %q", got, "teacher")
	}
	if got, _ := session.Get(ctx, "u1"); got != "teacher" {
		t.Errorf("session tier = %q, want %q", got, "teacher")
	}
}

func TestClearDropsBothTiers(t *testing.T) {
	ctx := context.Background()
	cache, _, _ := newTwoTier()

	if err := cache.Set(ctx, "u1", "teacher"); err != nil {
		t.Fatal(err)
	}
	cache.Clear(ctx, "u1")

	if got := cache.Get(ctx, "u1"); got != "" {
		t.Errorf("Get after Clear = %q, want empty", got)
	}
}

func TestNilTiersAreTolerated(t *testing.T) {
	cache := New(nil, NewMemoryTier(time.Minute))
	ctx := context.Background()

	if err := cache.Set(ctx, "u1", "student"); err != nil {
		t.Fatal(err)
	}
	if got := cache.Get(ctx, "u1"); got != "student" {
		t.Errorf("Get = %q, want %q", got, "student")
	}
}
