package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"authgate/config"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			TokenLifetime:     30 * time.Minute,
			MinPasswordLength: 8,
		},
	}
	cfg.SecretKey.Signing = "0123456789abcdef0123456789abcdef"

	return cfg
}

// fakeCredentialStore is an in-memory CredentialRepository. Uniqueness is
// enforced atomically under a single mutex, mirroring the database's
// unique-constraint guarantee for concurrent inserts.
type fakeCredentialStore struct {
	mu    sync.Mutex
	users map[string]*entity.User // keyed by username
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{users: make(map[string]*entity.User)}
}

func (s *fakeCredentialStore) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[username]; ok {
		clone := *user

		return &clone, nil
	}

	return nil, repository.ErrUserNotFound
}

func (s *fakeCredentialStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username || user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *fakeCredentialStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return domainerrors.ErrDuplicateCredential.WrapMessage("username or email already exists")
		}
	}

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	s.users[user.Username] = &clone

	return nil
}

func (s *fakeCredentialStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users)
}

// fakeTxManager satisfies TransactionManager without transactional semantics;
// atomicity in tests comes from the fake store's mutex.
type fakeTxManager struct {
	store *fakeCredentialStore
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repos repository.RepositoryFactory) error) error {
	return fn(tm)
}

func (tm *fakeTxManager) CredentialRepo() repository.CredentialRepository {
	return tm.store
}
