package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
)

// CredentialStore hashes passwords with bcrypt and keeps them in an
// AuthRepository.
type CredentialStore struct {
	repo      ports.AuthRepository
	cost      int
	dummyHash []byte
	log       zerolog.Logger
}

func NewCredentialStore(repo ports.AuthRepository, cost int, log zerolog.Logger) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Compared against when the username is unknown so both paths cost one bcrypt run.
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		panic(fmt.Sprintf("credential store: dummy hash: %v", err))
	}
	return &CredentialStore{repo: repo, cost: cost, dummyHash: dummy, log: log}
}

// CreateUser stores username with a bcrypt hash of password. It returns false
// for a taken username and for every other failure; the cause is only logged.
func (s *CredentialStore) CreateUser(ctx context.Context, username, password string) bool {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("hash password")
		return false
	}

	_, err = s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		s.log.Info().Str("username", username).Msg("registration rejected: username taken")
		return false
	case err != nil:
		s.log.Error().Err(err).Str("username", username).Msg("create user")
		return false
	}
	return true
}

// VerifyUser checks password against the stored hash for username.
func (s *CredentialStore) VerifyUser(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("verify user: %w", err)
	}

	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil, nil
}
