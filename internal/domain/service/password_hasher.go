// Package service defines interfaces for stateless domain logic that does not
// belong to a single entity.
package service

// PasswordHasher is the one-way credential transform. Implementations must use
// a slow, salted, adaptive algorithm so that equal plaintexts produce distinct
// hashes and brute force stays expensive.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	// The empty password is rejected with an error.
	Hash(password string) (string, error)

	// Check reports whether plaintext matches the given hash. Malformed
	// hashes yield false, never an error.
	Check(password, hash string) bool
}
