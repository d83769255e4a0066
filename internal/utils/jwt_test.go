package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const secret = "test-secret"

func TestSignAndParse(t *testing.T) {
	tok, err := SignJWT(secret, "ayu@test.com", 2*time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c, err := ParseJWT(tok, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Email != "ayu@test.com" {
		t.Errorf("email: got %s", c.Email)
	}
	if c.ID == "" {
		t.Error("missing jti")
	}

	// expiry is ~2h from now
	diff := time.Until(c.ExpiresAt.Time)
	if diff < 119*time.Minute || diff > 121*time.Minute {
		t.Errorf("expected ~2h expiry, got %v", diff)
	}
}

func TestTokenIDsUnique(t *testing.T) {
	a, _ := SignJWT(secret, "x@test.com", time.Hour)
	b, _ := SignJWT(secret, "x@test.com", time.Hour)
	ca, _ := ParseJWT(a, secret)
	cb, _ := ParseJWT(b, secret)
	if ca.ID == cb.ID {
		t.Error("two tokens share a jti")
	}
}

func TestParseRejects(t *testing.T) {
	valid, _ := SignJWT(secret, "x@test.com", time.Hour)
	expired, _ := SignJWT(secret, "x@test.com", -time.Minute)

	noneTok, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: "x@test.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	noEmail, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "x@test.com"}).SignedString([]byte(secret))

	tests := []struct {
		name   string
		raw    string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"expired", expired, secret},
		{"alg none", noneTok, secret},
		{"garbage", "not.a.token", secret},
		{"empty", "", secret},
		{"missing email", noEmail, secret},
		{"missing exp", noExp, secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJWT(tt.raw, tt.secret); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseExpiredIsDistinguishable(t *testing.T) {
	expired, _ := SignJWT(secret, "x@test.com", -time.Minute)
	_, err := ParseJWT(expired, secret)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}
