package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
	"github.com/hrcore/employee-service/internal/pkg/metrics"
)

// AuthService implements registration and login.
type AuthService struct {
	credentials ports.CredentialStore
	tokens      ports.TokenService
	log         zerolog.Logger
}

func NewAuthService(credentials ports.CredentialStore, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{credentials: credentials, tokens: tokens, log: log}
}

// Register creates a credential. Every failure is reported as
// domain.ErrRegistrationFailed so callers cannot probe for usernames.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return domain.ErrRegistrationFailed
	}
	if !s.credentials.CreateUser(ctx, username, password) {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return domain.ErrRegistrationFailed
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", username).Msg("user registered")
	return nil
}

// Login returns a bearer token for valid credentials and
// domain.ErrInvalidCredentials otherwise, whether or not the username exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	ok, err := s.credentials.VerifyUser(ctx, username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: %w", err)
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}
