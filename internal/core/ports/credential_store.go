package ports

import "context"

// CredentialStore owns username/password-hash pairs.
type CredentialStore interface {
	// CreateUser reports false on any failure, duplicate usernames included.
	CreateUser(ctx context.Context, username, password string) bool
	// VerifyUser reports whether the password matches. The error is reserved
	// for unexpected store failures.
	VerifyUser(ctx context.Context, username, password string) (bool, error)
}
