package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotBcryptHash is returned for an admin hash bcrypt cannot read
var ErrNotBcryptHash = errors.New("not a bcrypt hash")

// BcryptPasswordService hashes and checks the admin console password
type BcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService uses bcrypt.DefaultCost when cost is outside bcrypt's range
func NewBcryptPasswordService(cost int) *BcryptPasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordService{cost: cost}
}

func (s *BcryptPasswordService) Cost() int {
	return s.cost
}

func (s *BcryptPasswordService) HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *BcryptPasswordService) ComparePassword(hashedPassword, plain string) error {
	if hashedPassword == "" || plain == "" {
		return fmt.Errorf("passwords cannot be empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plain))
}

// CheckHash reports whether hash is a bcrypt hash
func CheckHash(hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("%w: %v", ErrNotBcryptHash, err)
	}
	return nil
}
