package middleware

import (
	"net/http"
	"strings"

	"bookstore-api/models"

	"github.com/gin-gonic/gin"
)

// Access is the requirement class of a policy rule.
type Access int

const (
	// Public allows the request through with or without an identity.
	Public Access = iota
	// AuthenticatedAny requires any valid identity.
	AuthenticatedAny
	// RoleBased requires an identity whose role satisfies one of Rule.Roles.
	RoleBased
)

// Rule maps a path pattern and method set to an access requirement. Patterns
// support "*" for a single segment and a trailing "**" for any remainder.
type Rule struct {
	Pattern string
	Methods []string // empty = any method
	Access  Access
	Roles   []models.Role
}

// DefaultRules is the ordered policy table; the first matching rule wins, so
// specific prefixes must come before broader ones on the same path.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "/", Methods: []string{http.MethodGet}, Access: Public},
		{Pattern: "/health", Methods: []string{http.MethodGet}, Access: Public},
		{Pattern: "/state-machine", Methods: []string{http.MethodGet}, Access: Public},
		{Pattern: "/user/register", Methods: []string{http.MethodPost}, Access: Public},
		{Pattern: "/user/login", Methods: []string{http.MethodPost}, Access: Public},
		{Pattern: "/user/refresh", Methods: []string{http.MethodPost}, Access: Public},
		{Pattern: "/books", Methods: []string{http.MethodGet}, Access: Public},
		{Pattern: "/books/**", Methods: []string{http.MethodGet}, Access: Public},
		{Pattern: "/uploads/**", Methods: []string{http.MethodGet}, Access: Public},

		{Pattern: "/admin/**", Access: RoleBased, Roles: []models.Role{models.RoleAdmin}},
		{Pattern: "/users", Methods: []string{http.MethodGet}, Access: RoleBased, Roles: []models.Role{models.RoleAdmin}},
		{Pattern: "/user/*", Methods: []string{http.MethodDelete}, Access: RoleBased, Roles: []models.Role{models.RoleAdmin}},

		{Pattern: "/user/me", Methods: []string{http.MethodGet}, Access: AuthenticatedAny},
		{Pattern: "/user/*/profile", Methods: []string{http.MethodPut}, Access: AuthenticatedAny},
		{Pattern: "/user/*", Methods: []string{http.MethodGet}, Access: AuthenticatedAny},

		{Pattern: "/delivery/**", Access: RoleBased, Roles: []models.Role{models.RoleDeliveryAgent}},
		{Pattern: "/orders/**", Access: RoleBased, Roles: []models.Role{models.RoleCustomer, models.RoleAdmin}},
		{Pattern: "/cart/**", Access: RoleBased, Roles: []models.Role{models.RoleCustomer, models.RoleAdmin}},
		{Pattern: "/payment/**", Access: AuthenticatedAny},
	}
}

// Authorize evaluates the rule table against each request. Requests that
// match no rule require authentication. This is the only layer that produces
// 401/403.
func Authorize(rules []Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		rule := match(rules, c.Request.Method, c.Request.URL.Path)

		if rule.Access == Public {
			c.Next()
			return
		}

		identity, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if rule.Access == RoleBased && !satisfiesAny(identity.Role, rule.Roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

func match(rules []Rule, method, path string) Rule {
	for _, r := range rules {
		if matchMethod(r.Methods, method) && matchPath(r.Pattern, path) {
			return r
		}
	}
	// unmatched requests fail closed to authenticated-any
	return Rule{Access: AuthenticatedAny}
}

func matchMethod(methods []string, method string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

func matchPath(pattern, path string) bool {
	pp := segments(pattern)
	ps := segments(path)
	for i, seg := range pp {
		if seg == "**" {
			return true
		}
		if i >= len(ps) {
			return false
		}
		if seg != "*" && seg != ps[i] {
			return false
		}
	}
	return len(pp) == len(ps)
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func satisfiesAny(role models.Role, required []models.Role) bool {
	for _, r := range required {
		if role.Satisfies(r) {
			return true
		}
	}
	return false
}
