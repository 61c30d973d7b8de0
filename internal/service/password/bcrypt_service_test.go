package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordService(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	t.Run("HashPassword", func(t *testing.T) {
		hash, err := service.HashPassword("test-password-123")
		if err != nil {
			t.Errorf("Failed to hash password: %v", err)
		}
		if hash == "" || hash == "test-password-123" {
			t.Error("Hash should not be empty or plain text")
		}
		if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.MinCost {
			t.Errorf("Hash cost = %d, want %d", cost, bcrypt.MinCost)
		}
	})

	t.Run("HashEmptyPassword", func(t *testing.T) {
		if _, err := service.HashPassword(""); err == nil {
			t.Error("Should fail to hash empty password")
		}
	})

	t.Run("ComparePassword", func(t *testing.T) {
		hash, err := service.HashPassword("test-password-123")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		if err := service.ComparePassword(hash, "test-password-123"); err != nil {
			t.Errorf("Password should match: %v", err)
		}
		if err := service.ComparePassword(hash, "wrong-password-456"); err == nil {
			t.Error("Wrong password should not match")
		}
	})

	t.Run("CompareEmpty", func(t *testing.T) {
		if err := service.ComparePassword("", "x"); err == nil {
			t.Error("Should fail on empty hash")
		}
	})
}

func TestNewBcryptPasswordService_Cost(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, bcrypt.DefaultCost},
		{bcrypt.MinCost - 1, bcrypt.DefaultCost},
		{bcrypt.MaxCost + 1, bcrypt.DefaultCost},
		{12, 12},
	}
	for _, tt := range tests {
		if got := NewBcryptPasswordService(tt.in).Cost(); got != tt.want {
			t.Errorf("cost %d: got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCheckHash(t *testing.T) {
	hash, err := NewBcryptPasswordService(bcrypt.MinCost).HashPassword("secret")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := CheckHash(hash); err != nil {
		t.Errorf("Valid hash rejected: %v", err)
	}
	if err := CheckHash("plain-text"); !errors.Is(err, ErrNotBcryptHash) {
		t.Errorf("Plain text should be rejected, got %v", err)
	}
}
