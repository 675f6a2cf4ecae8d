package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "storefront/internal/errors"
	"storefront/internal/repository"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash for passwords bcrypt cannot hash.
var ErrPasswordTooLong = apperrors.Validation("Validation Error", apperrors.FieldError{
	Field:    "password",
	Location: apperrors.LocationBody,
	Messages: []string{fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)},
})

// CredentialStore hashes and verifies principal passwords.
type CredentialStore struct {
	cost int
}

// NewCredentialStore creates a credential store hashing with the given bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewCredentialStore(cost int) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{cost: cost}
}

// Cost returns the bcrypt cost used for new hashes.
func (s *CredentialStore) Cost() int {
	return s.cost
}

// Hash returns the bcrypt hash of plaintext.
func (s *CredentialStore) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches storedHash.
func (s *CredentialStore) Verify(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// CheckDuplicateEmail turns a uniqueness violation on the users table into a Conflict on "email".
func CheckDuplicateEmail(err error) error {
	return repository.CheckDuplicate(err, "email")
}
