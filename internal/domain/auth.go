// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// User is a registered storefront account.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first-name"`
	LastName     string `json:"last-name"`
	PasswordHash string `json:"-"`
}

// Session describes an issued bearer token. Signature and expiry live inside
// the token itself; the struct is only a view of its claims.
type Session struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// UserRepository defines the port for the user registry.
// Implementations must make the email check and the insert in Create a single
// atomic step.
type UserRepository interface {
	Create(ctx context.Context, email, firstName, lastName, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	EmailExists(ctx context.Context, email string) bool
	List(ctx context.Context) map[string]User
	Count(ctx context.Context) int
	Seed(users []User) error
}

// UserSeed supplies the users loaded once at startup.
type UserSeed interface {
	Users(ctx context.Context) ([]User, error)
}

// PasswordHasher hashes raw passwords and verifies them against stored values.
// IsHashed tells a stored hash apart from a plaintext seed password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) bool
	IsHashed(stored string) bool
}

// TokenSigner mints and verifies self-contained signed tokens.
// Parse returns an error wrapping ErrTokenExpired when only the expiry check fails.
type TokenSigner interface {
	Sign(subject string, issuedAt, expiresAt time.Time) (string, error)
	Parse(raw string, now time.Time) (Session, error)
}

// LiveTokenSet records the tokens this process issued and has not yet
// evicted or revoked. Remove must be idempotent.
type LiveTokenSet interface {
	Add(token string, expiresAt time.Time)
	Contains(token string) bool
	Remove(token string) bool
	PurgeExpired(now time.Time) int
	Len() int
}
