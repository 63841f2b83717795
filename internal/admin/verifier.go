package admin

import (
	"crypto/subtle"
	"fmt"
)

// CredentialVerifier decides whether a username/password pair grants
// admin access. The gate depends on this capability rather than on
// embedded literals, so deployments can swap in an identity provider.
type CredentialVerifier interface {
	Verify(username, password string) (bool, error)
}

// StaticVerifier verifies against a single configured credential pair.
// The password is hashed at construction; only the Argon2id digest is
// kept in memory.
type StaticVerifier struct {
	username     string
	passwordHash string
	hasher       *PasswordHasher
}

// NewStaticVerifier hashes the configured password and returns a verifier.
func NewStaticVerifier(username, password string, hasher *PasswordHasher) (*StaticVerifier, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("admin username and password are required")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &StaticVerifier{
		username:     username,
		passwordHash: hash,
		hasher:       hasher,
	}, nil
}

// Verify checks the pair in constant time with respect to the username.
func (v *StaticVerifier) Verify(username, password string) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1

	passOK, err := v.hasher.Verify(password, v.passwordHash)
	if err != nil {
		return false, err
	}

	return userOK && passOK, nil
}
