// Package service declares the domain's stateless collaborators.
package service

// PasswordHasher turns plaintext passwords into salted, self-describing hashes.
// Implementations embed their parameters in the hash so Check needs nothing else.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password produces hash. Malformed hashes never match.
	Check(password, hash string) bool
}
