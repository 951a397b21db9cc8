package app

import (
	"context"
	"errors"
	"fmt"

	"webstore/internal/domain"

	"go.uber.org/zap"
)

// UserService encapsulates the user registry use cases.
type UserService struct {
	repo   domain.UserRepository
	hasher domain.PasswordHasher
	log    *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo domain.UserRepository, hasher domain.PasswordHasher, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{repo: repo, hasher: hasher, log: log}
}

// Bootstrap loads the seed users into the registry. Plaintext passwords in
// the seed are hashed with the configured hasher. Any failure is fatal.
func (s *UserService) Bootstrap(ctx context.Context, seed domain.UserSeed) error {
	users, err := seed.Users(ctx)
	if err != nil {
		return domain.Wrap(domain.ErrFatal, err, "load bootstrap users: %v", err)
	}

	for i := range users {
		if s.hasher.IsHashed(users[i].PasswordHash) {
			continue
		}
		hash, err := s.hasher.Hash(users[i].PasswordHash)
		if err != nil {
			return domain.Wrap(domain.ErrFatal, err, "hash bootstrap password for %s: %v", users[i].Email, err)
		}
		users[i].PasswordHash = hash
	}

	if err := s.repo.Seed(users); err != nil {
		return domain.Wrap(domain.ErrFatal, err, "seed users: %v", err)
	}
	s.log.Info("users bootstrapped", zap.Int("count", len(users)))
	return nil
}

// ListUsers returns a snapshot of all users keyed by id.
func (s *UserService) ListUsers(ctx context.Context) map[string]domain.User {
	return s.repo.List(ctx)
}

// EmailExists reports whether the exact email is registered.
func (s *UserService) EmailExists(ctx context.Context, email string) bool {
	return s.repo.EmailExists(ctx, email)
}

// AddUser hashes the password and registers the user. The hash is computed
// before the registry lock is taken.
func (s *UserService) AddUser(ctx context.Context, email, firstName, lastName, rawPassword string) (domain.User, error) {
	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.repo.Create(ctx, email, firstName, lastName, hash)
	if err != nil {
		return domain.User{}, err
	}
	s.log.Info("user added", zap.String("id", u.ID), zap.String("email", u.Email))
	return u, nil
}

// CheckCredentials reports whether email exists and rawPassword matches.
// Unknown email and wrong password are indistinguishable.
func (s *UserService) CheckCredentials(ctx context.Context, email, rawPassword string) bool {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("credential lookup failed", zap.Error(err))
		}
		return false
	}
	return s.hasher.Verify(rawPassword, u.PasswordHash)
}
