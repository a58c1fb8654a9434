package api

import (
	"errors"
	"time"

	"github.com/ghaggin/portal/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errNoSecret = errors.New("api.jwt_secret is not set")

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(c *config.Config) (*TokenIssuer, error) {
	if c.API.JWTSecret == "" {
		return nil, errNoSecret
	}

	return &TokenIssuer{
		secret: []byte(c.API.JWTSecret),
		ttl:    c.API.TokenTTL,
		now:    time.Now,
	}, nil
}

func (t *TokenIssuer) Issue(username string) (string, error) {
	now := t.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}
