package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/bulletin-go/apperror"
)

// maxPasswordBytes is bcrypt's input limit; longer input is silently
// truncated by the algorithm, so it is rejected up front instead.
const maxPasswordBytes = 72

// PasswordHasher turns a plaintext secret into a stored hash and verifies
// candidate plaintexts against stored hashes. Implementations must produce
// salted, adaptively-slow hashes that embed their own parameters, so old
// hashes remain verifiable after the work factor is raised.
type PasswordHasher interface {
	// Hash produces a fresh salted hash. Two calls on the same plaintext
	// yield different outputs.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches storedHash. A mismatch or a
	// malformed stored hash is a normal false result, not an error.
	Verify(plaintext, storedHash string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a PasswordHasher backed by bcrypt with the given
// work factor.
func NewBcryptHasher(cost int) PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", apperror.NewValidationError("password must not be empty", nil)
	}
	if len(plaintext) > maxPasswordBytes {
		return "", apperror.NewValidationError(fmt.Sprintf("password must not exceed %d bytes", maxPasswordBytes), nil)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Verify(plaintext, storedHash string) bool {
	// CompareHashAndPassword reads the salt and cost out of the stored hash
	// and compares in constant time.
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
