package middleware

import (
	"strings"

	"bookstore-api/auth"
	"bookstore-api/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is the request-scoped caller identity attached by Authenticate.
// It is stored once and never mutated.
type Identity struct {
	UserID   uint
	Username string
	Role     models.Role
}

// Authenticate extracts and validates a bearer token if one is present. It is
// deliberately fail-open: a missing, malformed or invalid token leaves the
// request without an identity and defers the 401/403 decision to Authorize.
func Authenticate(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		claims, err := tokens.ValidateAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.Next()
			return
		}
		c.Set(identityKey, Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// IdentityFrom returns the caller identity, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// GetUserID extracts the caller user ID from context
func GetUserID(c *gin.Context) uint {
	id, _ := IdentityFrom(c)
	return id.UserID
}

// GetRole extracts the caller role from context
func GetRole(c *gin.Context) models.Role {
	id, _ := IdentityFrom(c)
	return id.Role
}
