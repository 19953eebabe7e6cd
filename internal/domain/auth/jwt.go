package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
)

// Claims carried inside access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager with the given signing secret
// and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed access token for the user.
func (m *TokenManager) Issue(u *User) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email: u.Email,
		Name:  u.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperror.NewInternal(err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user id and claims.
func (m *TokenManager) Verify(tokenString string) (id.ID, *Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return id.Nil(), nil, apperror.NewUnauthorized("invalid or expired token").WithCause(err)
	}

	userID, err := id.Parse(claims.Subject)
	if err != nil {
		return id.Nil(), nil, apperror.NewUnauthorized("invalid token subject").WithCause(err)
	}
	return userID, claims, nil
}
