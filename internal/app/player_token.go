package app

import (
	"errors"
	"fmt"
	"time"

	"cribbage/internal/ports"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an issued player token stays valid.
const DefaultTokenTTL = 12 * time.Hour

// ErrInvalidToken is returned for tokens that fail signature, issuer or expiry checks.
var ErrInvalidToken = errors.New("invalid player token")

// PlayerTokens issues and verifies HS256 tokens that carry a player identity
// for calls made with the server key instead of a user session.
type PlayerTokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewPlayerTokens(secret, issuer string, ttl time.Duration) *PlayerTokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &PlayerTokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for playerID.
func (p *PlayerTokens) Issue(playerID, display string) (string, error) {
	if p == nil {
		return "", fmt.Errorf("player token service is nil")
	}
	if playerID == "" {
		return "", fmt.Errorf("player id is required")
	}
	if len(p.secret) == 0 || p.issuer == "" {
		return "", fmt.Errorf("player token config is incomplete")
	}

	now := p.now()
	claims := jwt.MapClaims{
		"iss":  p.issuer,
		"sub":  playerID,
		"name": display,
		"iat":  now.Unix(),
		"exp":  now.Add(p.ttl).Unix(),
		"jti":  uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks tokenString and returns the identity it carries.
func (p *PlayerTokens) Verify(tokenString string) (ports.Identity, error) {
	if p == nil || len(p.secret) == 0 {
		return ports.Identity{}, fmt.Errorf("player token config is incomplete")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ports.Identity{}, ErrInvalidToken
	}
	if !claims.VerifyIssuer(p.issuer, true) {
		return ports.Identity{}, fmt.Errorf("%w: wrong issuer", ErrInvalidToken)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return ports.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	name, _ := claims["name"].(string)
	return ports.Identity{PlayerID: sub, Display: name}, nil
}
