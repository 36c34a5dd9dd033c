package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Redirect targets for the session guard.
const (
	SignInPath    = "/auth/signin"
	DashboardPath = "/dashboard"
)

// RoutePolicy ties a path prefix to the roles allowed under it. An empty
// Roles slice means any authenticated user.
type RoutePolicy struct {
	Prefix string
	Roles  []string
}

// DefaultPolicies covers the three protected areas: teacher pages require
// the teacher role, dashboard and coding pages require any signed-in user.
func DefaultPolicies() []RoutePolicy {
	return []RoutePolicy{
		{Prefix: "/teacher", Roles: []string{"teacher"}},
		{Prefix: "/dashboard"},
		{Prefix: "/coding"},
	}
}

// GuardDecision is the outcome of evaluating one request against the policy
// table. Redirect is "" when the request may proceed.
type GuardDecision struct {
	Redirect string
	Role     string
}

// DecideAccess evaluates a path and raw cookie token against the policies.
// The token is decoded without signature verification: the guard runs before
// any backend round trip and only routes, it grants nothing. A missing or
// undecodable token is treated as signed out. A decodable token with no role
// claim defaults to student, the weakest role.
func DecideAccess(path, rawToken string, policies []RoutePolicy) GuardDecision {
	var matched *RoutePolicy
	for i := range policies {
		if strings.HasPrefix(path, policies[i].Prefix) {
			matched = &policies[i]
			break
		}
	}
	if matched == nil {
		return GuardDecision{}
	}

	if rawToken == "" {
		return GuardDecision{Redirect: SignInPath}
	}

	role := decodeRoleClaim(rawToken)
	if role == "" {
		return GuardDecision{Redirect: SignInPath}
	}

	if len(matched.Roles) == 0 {
		return GuardDecision{Role: role}
	}
	for _, allowed := range matched.Roles {
		if role == allowed {
			return GuardDecision{Role: role}
		}
	}
	return GuardDecision{Redirect: DashboardPath, Role: role}
}

// decodeRoleClaim extracts the role claim from an unverified token. Returns
// "" when the token does not decode at all, "student" when it decodes but
// carries no role.
func decodeRoleClaim(rawToken string) string {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(rawToken, claims); err != nil {
		return ""
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		return role
	}
	return "student"
}

// SessionGuard is the edge middleware form of DecideAccess. It issues 302
// redirects for denied requests and stamps the decoded role into locals as
// an advisory value. Handlers needing a trusted identity still go through
// JwtMiddleware, which verifies the signature.
func SessionGuard(policies []RoutePolicy) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		decision := DecideAccess(ctx.Path(), ctx.Cookies(AccessTokenCookie), policies)
		if decision.Redirect != "" {
			return ctx.Redirect(decision.Redirect, fiber.StatusFound)
		}
		if decision.Role != "" {
			ctx.Locals("session_role", decision.Role)
		}
		return ctx.Next()
	}
}
