package ports

import "dispatch/internal/core/domain/model/user"

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

// TokenIssuer creates bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(identity user.Identity) (string, error)
}

// CredentialVerifier turns a bearer token into a verified identity
// or returns *errs.UnauthenticatedError.
type CredentialVerifier interface {
	Verify(token string) (user.Identity, error)
}
