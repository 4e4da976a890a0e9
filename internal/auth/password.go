// Package auth implements password hashing and bearer token issuance.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt hashing and verification. bcrypt embeds a
// per-hash salt, so hashing the same plaintext twice yields different outputs.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using the default bcrypt cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a one-way hash from the plaintext password.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
