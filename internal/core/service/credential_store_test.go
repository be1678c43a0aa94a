package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrcore/employee-service/internal/core/domain"
)

type stubAuthRepo struct {
	users     map[string]*domain.User
	createErr error
	findErr   error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = int64(len(r.users) + 1)
	r.users[clone.Username] = &clone
	return &clone, nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func newTestCredentialStore(repo *stubAuthRepo) *CredentialStore {
	return NewCredentialStore(repo, bcrypt.MinCost, zerolog.Nop())
}

func TestCredentialStore_CreateUser_HashesPassword(t *testing.T) {
	repo := newStubAuthRepo()
	store := newTestCredentialStore(repo)

	if !store.CreateUser(context.Background(), "alice", "secret1") {
		t.Fatalf("expected CreateUser to succeed")
	}

	stored := repo.users["alice"]
	if stored == nil {
		t.Fatalf("expected user to be stored")
	}
	if stored.PasswordHash == "secret1" || !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", stored.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestCredentialStore_CreateUser_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	store := newTestCredentialStore(repo)

	if !store.CreateUser(context.Background(), "bob", "pass123") {
		t.Fatalf("first CreateUser failed")
	}
	if store.CreateUser(context.Background(), "bob", "other123") {
		t.Fatalf("expected duplicate username to be rejected")
	}
}

func TestCredentialStore_CreateUser_StoreFailure(t *testing.T) {
	repo := newStubAuthRepo()
	repo.createErr = errStoreDown
	store := newTestCredentialStore(repo)

	if store.CreateUser(context.Background(), "carol", "pass123") {
		t.Fatalf("expected failure when the store is down")
	}
}

func TestCredentialStore_VerifyUser(t *testing.T) {
	repo := newStubAuthRepo()
	store := newTestCredentialStore(repo)
	store.CreateUser(context.Background(), "dave", "goodpass")

	cases := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{name: "match", username: "dave", password: "goodpass", want: true},
		{name: "wrong password", username: "dave", password: "badpass", want: false},
		{name: "unknown user", username: "ghost", password: "goodpass", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.VerifyUser(context.Background(), tc.username, tc.password)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("VerifyUser = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCredentialStore_VerifyUser_StoreFailure(t *testing.T) {
	repo := newStubAuthRepo()
	repo.findErr = errStoreDown
	store := newTestCredentialStore(repo)

	ok, err := store.VerifyUser(context.Background(), "dave", "goodpass")
	if ok || !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got ok=%v err=%v", ok, err)
	}
}
