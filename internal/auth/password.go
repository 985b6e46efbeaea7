// Package auth implements the credential collaborators of the core: bcrypt
// password hashing and HS256 session tokens issued by the CLI on login.
package auth

import "golang.org/x/crypto/bcrypt"

// BcryptHasher derives and verifies bcrypt credential digests. It satisfies
// store.CredentialHasher.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher with the library default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, h.Cost)
}

// Verify reports whether password matches the stored digest. bcrypt performs
// the digest comparison in constant time.
func (h *BcryptHasher) Verify(hash, password []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, password) == nil
}
