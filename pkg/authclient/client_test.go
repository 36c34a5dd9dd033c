package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devonaut-be/pkg/rolecache"

	"github.com/stretchr/testify/assert"
)

func whoamiServer(t *testing.T, status int, user *User) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
			return
		}
		w.Header().Set("X-User-Role", user.Role)
		json.NewEncoder(w).Encode(user)
	}))
}

func newTestCache() *rolecache.Cache {
	return rolecache.New(rolecache.NewMemoryTier(time.Hour), rolecache.NewMemoryTier(time.Minute))
}

func TestCheckValidSessionAllowed(t *testing.T) {
	srv := whoamiServer(t, http.StatusOK, &User{Username: "alice", UserId: "u1", Role: "student"})
	defer srv.Close()

	c := New(srv.URL)
	decision, err := c.Check(context.Background(), nil)
	assert.NoError(t, err)
	assert.NotNil(t, decision.User)
	assert.Equal(t, "alice", decision.User.Username)
	assert.Empty(t, decision.Redirect)
}

func TestCheckExpiredSessionRedirectsToSignIn(t *testing.T) {
	srv := whoamiServer(t, http.StatusUnauthorized, nil)
	defer srv.Close()

	c := New(srv.URL)
	decision, err := c.Check(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, decision.User)
	assert.Equal(t, SignInPath, decision.Redirect)
}

func TestCheckRoleDeniedStillExposesUser(t *testing.T) {
	srv := whoamiServer(t, http.StatusOK, &User{Username: "bob", UserId: "u2", Role: "student"})
	defer srv.Close()

	c := New(srv.URL)
	decision, err := c.Check(context.Background(), []string{"teacher"})
	assert.NoError(t, err)
	// The user is recorded even though the view is denied: the caller
	// applies the identity first, then navigates away.
	assert.NotNil(t, decision.User)
	assert.Equal(t, "bob", decision.User.Username)
	assert.Equal(t, DashboardPath, decision.Redirect)
}

func TestCheckDriftPrefersServerRole(t *testing.T) {
	srv := whoamiServer(t, http.StatusOK, &User{Username: "carol", UserId: "u3", Role: "student"})
	defer srv.Close()

	roles := newTestCache()
	assert.NoError(t, roles.Set(context.Background(), "u3", "teacher"))

	c := New(srv.URL, WithRoleCache(roles))
	decision, err := c.Check(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, "student", decision.User.Role)
	// The stale cached "teacher" is overwritten with the verified role.
	assert.Equal(t, "student", roles.Get(context.Background(), "u3"))
}

func TestCheckFailureClearsCachedRole(t *testing.T) {
	user := &User{Username: "dave", UserId: "u4", Role: "teacher"}
	authed := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authed {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(user)
	}))
	defer srv.Close()

	roles := newTestCache()
	c := New(srv.URL, WithRoleCache(roles))

	_, err := c.Check(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, "teacher", roles.Get(context.Background(), "u4"))

	// Session dies; the next check clears the mirror for that user.
	authed = false
	decision, err := c.Check(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, SignInPath, decision.Redirect)
	assert.Empty(t, roles.Get(context.Background(), "u4"))
}

func TestCheckCancelledContext(t *testing.T) {
	srv := whoamiServer(t, http.StatusOK, &User{Username: "erin", UserId: "u5", Role: "student"})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL)
	_, err := c.Check(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
