package app

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func TestPlayerTokensIssueAndVerify(t *testing.T) {
	tokens := NewPlayerTokens("test-secret", "cribbage", time.Hour)
	tokenString, err := tokens.Issue("user123", "Alice")
	if err != nil {
		t.Fatalf("issue token error: %v", err)
	}

	claims := parseTokenClaims(t, tokenString, "test-secret")
	if got := stringClaim(t, claims, "iss"); got != "cribbage" {
		t.Fatalf("iss = %s, want cribbage", got)
	}
	if got := stringClaim(t, claims, "sub"); got != "user123" {
		t.Fatalf("sub = %s, want user123", got)
	}
	if got := stringClaim(t, claims, "name"); got != "Alice" {
		t.Fatalf("name = %s, want Alice", got)
	}

	identity, err := tokens.Verify(tokenString)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if identity.PlayerID != "user123" || identity.Display != "Alice" {
		t.Fatalf("identity = %+v", identity)
	}
}

func TestPlayerTokensUniqueID(t *testing.T) {
	tokens := NewPlayerTokens("test-secret", "cribbage", time.Hour)
	a, _ := tokens.Issue("user123", "")
	b, _ := tokens.Issue("user123", "")
	jtiA := stringClaim(t, parseTokenClaims(t, a, "test-secret"), "jti")
	jtiB := stringClaim(t, parseTokenClaims(t, b, "test-secret"), "jti")
	if jtiA == jtiB {
		t.Fatalf("jti must be unique per token, got %s twice", jtiA)
	}
}

func TestPlayerTokensRejects(t *testing.T) {
	tokens := NewPlayerTokens("test-secret", "cribbage", time.Hour)
	good, err := tokens.Issue("user123", "Alice")
	if err != nil {
		t.Fatal(err)
	}

	expired := NewPlayerTokens("test-secret", "cribbage", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue("user123", "Alice")
	if err != nil {
		t.Fatal(err)
	}

	otherIssuer, _ := NewPlayerTokens("test-secret", "someone-else", time.Hour).Issue("user123", "Alice")

	tests := []struct {
		name   string
		tokens *PlayerTokens
		token  string
	}{
		{name: "Wrong secret", tokens: NewPlayerTokens("other-secret", "cribbage", time.Hour), token: good},
		{name: "Expired", tokens: tokens, token: old},
		{name: "Wrong issuer", tokens: tokens, token: otherIssuer},
		{name: "Garbage", tokens: tokens, token: "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.tokens.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestPlayerTokensRequireConfig(t *testing.T) {
	if _, err := NewPlayerTokens("", "cribbage", 0).Issue("user", ""); err == nil {
		t.Fatal("expected error for missing secret")
	}
	if _, err := NewPlayerTokens("secret", "cribbage", 0).Issue("", ""); err == nil {
		t.Fatal("expected error for missing player id")
	}
}

func parseTokenClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func stringClaim(t *testing.T, claims jwt.MapClaims, name string) string {
	t.Helper()
	value, ok := claims[name]
	if !ok {
		t.Fatalf("missing %s claim", name)
	}
	str, ok := value.(string)
	if !ok {
		t.Fatalf("%s claim is not a string", name)
	}
	return str
}
