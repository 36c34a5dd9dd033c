// Package authclient implements the session re-check that protected views
// run after mount. The edge guard has already routed on the unverified
// cookie by the time a page renders; this client asks the backend who the
// cookie really belongs to and corrects course when the two disagree.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"devonaut-be/internal/pkg/logger"
	"devonaut-be/pkg/rolecache"
)

const (
	SignInPath    = "/auth/signin"
	DashboardPath = "/dashboard"
)

// User is the verified identity returned by the whoami endpoint.
type User struct {
	Username string `json:"username"`
	UserId   string `json:"user_id"`
	Role     string `json:"role"`
}

// Decision is the outcome of one re-check. User is non-nil whenever the
// session was valid, even when Redirect is also set: callers apply the user
// first and then navigate, so a denied page still knows who was denied.
type Decision struct {
	User     *User
	Redirect string
}

type Client struct {
	baseURL string
	http    *http.Client
	roles   *rolecache.Cache
	logger  logger.ILogger

	// last verified user id, so a later failed re-check can clear the
	// right cache entry
	lastUserId string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithRoleCache(roles *rolecache.Cache) Option {
	return func(c *Client) { c.roles = roles }
}

func WithLogger(log logger.ILogger) Option {
	return func(c *Client) { c.logger = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check re-validates the session against the backend and decides whether
// the caller may stay on the current view. allowedRoles empty means any
// authenticated user. The branches run in a fixed order:
//
//  1. whoami fails: the session is gone, clear the cached role, sign in.
//  2. whoami succeeds: record the user (always, before any redirect).
//  3. the cached role disagrees with the server: the server wins and the
//     cache is rewritten.
//  4. the verified role is not allowed here: bounce to the dashboard.
func (c *Client) Check(ctx context.Context, allowedRoles []string) (*Decision, error) {
	user, err := c.whoami(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if c.roles != nil && c.lastUserId != "" {
			c.roles.Clear(ctx, c.lastUserId)
		}
		return &Decision{Redirect: SignInPath}, nil
	}

	c.lastUserId = user.UserId
	decision := &Decision{User: user}

	if c.roles != nil {
		if cached := c.roles.Get(ctx, user.UserId); cached != "" && cached != user.Role {
			if c.logger != nil {
				c.logger.Warn("AuthClient", "Cached role disagrees with server, trusting server", map[string]interface{}{
					"cached": cached,
					"server": user.Role,
				})
			}
		}
		_ = c.roles.Set(ctx, user.UserId, user.Role)
	}

	if len(allowedRoles) > 0 && !contains(allowedRoles, user.Role) {
		decision.Redirect = DashboardPath
	}
	return decision, nil
}

// whoami calls GET /users/me. The cookie jar on the HTTP client carries the
// session cookie.
func (c *Client) whoami(ctx context.Context) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return nil, err
	}

	// Echo the cached role so the server can log drift. Advisory only; the
	// server never authorizes on it.
	if c.roles != nil && c.lastUserId != "" {
		if cached := c.roles.Get(ctx, c.lastUserId); cached != "" {
			req.Header.Set("X-User-Role", cached)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whoami returned status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func contains(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
