package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore-api/auth"
	"bookstore-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTokens = auth.NewTokenService([]byte("test-access-secret"), []byte("test-refresh-secret"))

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(testTokens))
	r.Use(Authorize(DefaultRules()))

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/books", ok)
	r.GET("/user/me", ok)
	r.DELETE("/user/:id", ok)
	r.GET("/orders/mine", ok)
	r.GET("/orders/user/:id", ok)
	r.GET("/delivery/available", ok)
	r.GET("/admin/orders", ok)
	r.GET("/somewhere/else", ok)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func tokenFor(t *testing.T, id uint, name string, role models.Role) string {
	t.Helper()
	token, err := testTokens.IssueAccessToken(id, name, role)
	require.NoError(t, err)
	return token
}

func TestPolicy(t *testing.T) {
	r := testRouter(t)
	customer := tokenFor(t, 1, "alice", models.RoleCustomer)
	admin := tokenFor(t, 2, "root", models.RoleAdmin)
	agent := tokenFor(t, 3, "carrier", models.RoleDeliveryAgent)

	t.Run("public paths need no token", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/books", ""))
	})

	t.Run("protected path without token is 401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/orders/mine", ""))
		assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/user/me", ""))
	})

	t.Run("invalid token on protected path is 401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/orders/mine", "not-a-token"))
	})

	t.Run("invalid token on public path still passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/books", "not-a-token"))
	})

	t.Run("customer reaches order routes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/orders/mine", customer))
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/orders/user/2", customer))
	})

	t.Run("admin satisfies customer requirements", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/orders/mine", admin))
	})

	t.Run("delivery agent is a disjoint track", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/orders/mine", agent))
		assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/delivery/available", customer))
		assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/delivery/available", admin))
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/delivery/available", agent))
	})

	t.Run("admin surface rejects non-admins", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/admin/orders", customer))
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/admin/orders", admin))
	})

	t.Run("delete user is admin only by method-specific rule", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodDelete, "/user/1", customer))
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/user/1", admin))
	})

	t.Run("unmatched paths default to authenticated-any", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/somewhere/else", ""))
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/somewhere/else", customer))
	})
}

func TestMatchPath(t *testing.T) {
	cases := []struct {
		pattern, path string
		want          bool
	}{
		{"/books", "/books", true},
		{"/books", "/books/1", false},
		{"/books/**", "/books", true},
		{"/books/**", "/books/1", true},
		{"/books/**", "/books/1/reviews", true},
		{"/user/*", "/user/1", true},
		{"/user/*", "/user/1/profile", false},
		{"/user/*/profile", "/user/1/profile", true},
		{"/user/*/profile", "/user/1/settings", false},
		{"/", "/", true},
		{"/", "/books", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchPath(tc.pattern, tc.path), "%s vs %s", tc.pattern, tc.path)
	}
}

func TestIdentityFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := IdentityFrom(c)
	assert.False(t, ok)

	c.Set(identityKey, Identity{UserID: 7, Username: "alice", Role: models.RoleCustomer})
	id, ok := IdentityFrom(c)
	require.True(t, ok)
	assert.EqualValues(t, 7, id.UserID)
}
