package ports

import "time"

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	Issue(subject string) (string, error)
	IssueWithTTL(subject string, ttl time.Duration) (string, error)
	// Verify returns the subject, or ok=false for any invalid token.
	Verify(token string) (subject string, ok bool)
}
