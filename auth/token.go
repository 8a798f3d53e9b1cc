package auth

import (
	"strconv"
	"time"

	"bookstore-api/errs"
	"bookstore-api/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTTL  = 24 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

// Claims is the typed JWT payload. Role is empty on refresh tokens.
type Claims struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed tokens. Access and refresh tokens
// are signed with distinct secrets so one class can never pass validation as
// the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokenService(accessSecret, refreshSecret []byte) *TokenService {
	return &TokenService{accessSecret: accessSecret, refreshSecret: refreshSecret}
}

// IssueAccessToken signs a 24h token carrying identity and role, so
// authorization never needs a storage lookup per request.
func (s *TokenService) IssueAccessToken(userID uint, username string, role models.Role) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
}

// IssueRefreshToken signs a 7d token used solely to obtain new access tokens.
func (s *TokenService) IssueRefreshToken(userID uint, username string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
}

// ValidateAccess parses an access token.
func (s *TokenService) ValidateAccess(token string) (*Claims, error) {
	return validate(token, s.accessSecret)
}

// ValidateRefresh parses a refresh token.
func (s *TokenService) ValidateRefresh(token string) (*Claims, error) {
	return validate(token, s.refreshSecret)
}

func validate(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, errs.Authentication("invalid or expired token")
	}
	return claims, nil
}
