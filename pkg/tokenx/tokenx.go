// Package tokenx mints and verifies the signed session tokens handed to the
// presentation layer after a successful login. The token is the "current
// session" capability: handlers pass it back instead of holding ambient user
// state.
package tokenx

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("tokenx: invalid token")
	ErrExpiredToken = errors.New("tokenx: token expired")
)

// Claims carried by a session token.
type Claims struct {
	UserID int64
	Email  string
	Roles  []string
}

type sessionClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs session tokens with an HMAC-SHA256 secret.
type Issuer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Mint returns a signed session token for the given user claims.
func (i *Issuer) Mint(c Claims, now time.Time) (string, error) {
	if len(i.Secret) == 0 {
		return "", errors.New("tokenx: no signing secret configured")
	}

	claims := sessionClaims{
		Email: c.Email,
		Roles: c.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.Issuer,
			Subject:   strconv.FormatInt(c.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.Secret)
	if err != nil {
		return "", fmt.Errorf("tokenx: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token string and returns its claims.
func (i *Issuer) Verify(raw string) (Claims, error) {
	var claims sessionClaims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("tokenx: unexpected signing method %v", t.Header["alg"])
		}
		return i.Secret, nil
	}, jwt.WithIssuer(i.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		UserID: userID,
		Email:  claims.Email,
		Roles:  claims.Roles,
	}, nil
}
