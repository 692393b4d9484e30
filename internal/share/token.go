package share

import (
	"fmt"
	"time"

	"backend-routenav/internal/route"

	"github.com/golang-jwt/jwt/v5"
)

type shareClaims struct {
	Version    int           `json:"v"`
	StationIDs []string      `json:"stationIds"`
	Options    route.Options `json:"options"`
	jwt.RegisteredClaims
}

// TokenSigner turns share envelopes into signed, self-contained link tokens
// and back. A token needs no server-side state to resolve.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), ttl: ttl}
}

func (t *TokenSigner) Sign(env Envelope) (string, error) {
	if err := env.Validate(); err != nil {
		return "", err
	}

	now := time.Now()
	claims := shareClaims{
		Version:    env.Version,
		StationIDs: env.StationIDs,
		Options:    env.Options,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenSigner) Decode(token string) (Envelope, error) {
	parsed, err := jwt.ParseWithClaims(token, &shareClaims{}, func(_ *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", route.ErrInvalidInput, err)
	}

	claims, ok := parsed.Claims.(*shareClaims)
	if !ok || !parsed.Valid {
		return Envelope{}, fmt.Errorf("%w: share token invalid", route.ErrInvalidInput)
	}

	env := Envelope{
		Version:    claims.Version,
		StationIDs: claims.StationIDs,
		Options:    claims.Options,
	}
	if err := env.Validate(); err != nil {
		return Envelope{}, err
	}
	return env, nil
}
