// Package security issues and verifies the credentials the API accepts:
// bcrypt password hashes and HS256 bearer tokens.
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired or signed with another key.
	ErrInvalidToken = errors.New("invalid or expired token")
)

const issuer = "punch"

// Claims identify the acting user. IsAdmin is informational; admin routes
// re-check the stored flag.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// TokenProvider signs and validates HS256 tokens.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenProvider returns a provider using secret for signing and ttl for expiry.
func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the user and its expiry.
func (p *TokenProvider) Issue(userID uint, username string, isAdmin bool) (string, time.Time, error) {
	now := p.now().UTC()
	expiresAt := now.Add(p.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   userID,
		Username: username,
		IsAdmin:  isAdmin,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, expiresAt, nil
}

// Validate parses tokenString and returns its claims.
func (p *TokenProvider) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
