// Package memory implements in-memory stores for the user registry and live tokens.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"webstore/internal/domain"
)

// Users is the in-memory user registry. One lock covers the map and the id
// counter, so the email check, id assignment and insert in Create happen as a
// single step.
type Users struct {
	mu        sync.RWMutex
	users     map[string]domain.User
	idCounter int
}

// NewUsers creates an empty registry.
func NewUsers() *Users {
	return &Users{users: make(map[string]domain.User)}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*Users)(nil)

// Seed inserts users under their own ids. Duplicate ids or emails are
// rejected and nothing is inserted. The id counter continues after the
// largest numeric id, or the number of users if that is larger.
func (u *Users) Seed(users []domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	ids := make(map[string]bool, len(u.users)+len(users))
	emails := make(map[string]bool, len(u.users)+len(users))
	for id, existing := range u.users {
		ids[id] = true
		emails[existing.Email] = true
	}
	for _, nu := range users {
		if ids[nu.ID] {
			return fmt.Errorf("duplicate user id %q", nu.ID)
		}
		if emails[nu.Email] {
			return fmt.Errorf("duplicate email %q", nu.Email)
		}
		ids[nu.ID] = true
		emails[nu.Email] = true
	}

	for _, nu := range users {
		u.users[nu.ID] = nu
		if n, err := strconv.Atoi(nu.ID); err == nil && n > u.idCounter {
			u.idCounter = n
		}
	}
	if len(u.users) > u.idCounter {
		u.idCounter = len(u.users)
	}
	return nil
}

// --- UserRepository ---

// Create adds a user unless the email is already registered.
func (u *Users) Create(ctx context.Context, email, firstName, lastName, passwordHash string) (domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, existing := range u.users {
		if existing.Email == email {
			return domain.User{}, domain.Errorf(domain.ErrConflict, "Email already exists: %s", email)
		}
	}

	u.idCounter++
	nu := domain.User{
		ID:           strconv.Itoa(u.idCounter),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
	}
	u.users[nu.ID] = nu
	return nu, nil
}

// GetByEmail retrieves a user by exact email.
func (u *Users) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, existing := range u.users {
		if existing.Email == email {
			return existing, nil
		}
	}
	return domain.User{}, domain.Errorf(domain.ErrNotFound, "User not found: %s", email)
}

// EmailExists reports whether a user with exactly this email is registered.
func (u *Users) EmailExists(ctx context.Context, email string) bool {
	_, err := u.GetByEmail(ctx, email)
	return err == nil
}

// List returns a copy of all users keyed by id.
func (u *Users) List(ctx context.Context) map[string]domain.User {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make(map[string]domain.User, len(u.users))
	for id, existing := range u.users {
		out[id] = existing
	}
	return out
}

// Count returns the total number of users.
func (u *Users) Count(ctx context.Context) int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.users)
}
