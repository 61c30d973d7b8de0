package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/n3xa/n3xa/internal/ports"
)

func TestJWTService(t *testing.T) {
	service, err := NewJWTService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}

	t.Run("GenerateAccessToken", func(t *testing.T) {
		token, err := service.GenerateAccessToken(ports.TokenClaims{Subject: "admin", Email: "admin@n3xa.io", Role: "admin"})
		if err != nil {
			t.Errorf("Failed to generate access token: %v", err)
		}
		if token == "" {
			t.Error("Access token should not be empty")
		}
	})

	t.Run("ValidateAccessToken", func(t *testing.T) {
		tokenString, err := service.GenerateAccessToken(ports.TokenClaims{Subject: "admin", Email: "admin@n3xa.io", Role: "admin"})
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		claims, err := service.ValidateAccessToken(tokenString)
		if err != nil {
			t.Fatalf("Failed to validate token: %v", err)
		}
		if claims.Subject != "admin" || claims.Email != "admin@n3xa.io" || claims.Role != "admin" {
			t.Errorf("Unexpected claims: %+v", claims)
		}
	})

	t.Run("ValidateInvalidToken", func(t *testing.T) {
		_, err := service.ValidateAccessToken("invalid-token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("ValidateWrongSecret", func(t *testing.T) {
		other, _ := NewJWTService("other-secret", time.Hour)
		tokenString, _ := other.GenerateAccessToken(ports.TokenClaims{Subject: "admin"})
		if _, err := service.ValidateAccessToken(tokenString); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("ValidateExpiredToken", func(t *testing.T) {
		past, _ := NewJWTService("test-secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		tokenString, err := past.GenerateAccessToken(ports.TokenClaims{Subject: "admin"})
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}
		if _, err := service.ValidateAccessToken(tokenString); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("Expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestNewJWTService_Validation(t *testing.T) {
	if _, err := NewJWTService("", time.Hour); err == nil {
		t.Error("Expected error for empty secret")
	}
	if _, err := NewJWTService("s", 0); err == nil {
		t.Error("Expected error for zero ttl")
	}
}
