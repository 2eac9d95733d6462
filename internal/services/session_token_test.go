package services

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestBuildAndParseSessionToken(t *testing.T) {
	secret := []byte("test-secret")
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	token, err := BuildSessionToken(secret, 42, time.Hour, now)
	if err != nil {
		t.Fatalf("BuildSessionToken() unexpected error: %v", err)
	}

	claims, err := ParseSessionToken(secret, token, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("ParseSessionToken() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected UserID=42, got %d", claims.UserID)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected subject 42, got %q", claims.Subject)
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	token, err := BuildSessionToken(secret, 42, time.Minute, now)
	if err != nil {
		t.Fatalf("BuildSessionToken() unexpected error: %v", err)
	}

	if _, err := ParseSessionToken(secret, token, now.Add(2*time.Minute)); !errors.Is(err, ErrSessionTokenExpired) {
		t.Fatalf("expected ErrSessionTokenExpired, got %v", err)
	}
}

func TestParseSessionTokenRejectsForeignSignature(t *testing.T) {
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	token, err := BuildSessionToken([]byte("other-secret"), 42, time.Hour, now)
	if err != nil {
		t.Fatalf("BuildSessionToken() unexpected error: %v", err)
	}

	if _, err := ParseSessionToken([]byte("test-secret"), token, now); !errors.Is(err, ErrSessionTokenInvalid) {
		t.Fatalf("expected ErrSessionTokenInvalid, got %v", err)
	}
	if _, err := ParseSessionToken([]byte("test-secret"), "  ", now); !errors.Is(err, ErrSessionTokenMissing) {
		t.Fatalf("expected ErrSessionTokenMissing, got %v", err)
	}
}

func TestParseSessionTokenRejectsNoneAlgorithm(t *testing.T) {
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	claims := SessionClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(7, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := ParseSessionToken([]byte("test-secret"), unsigned, now); !errors.Is(err, ErrSessionTokenInvalid) {
		t.Fatalf("expected ErrSessionTokenInvalid, got %v", err)
	}
}
