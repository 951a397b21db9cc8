package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"webstore/internal/adapter/memory"
	"webstore/internal/adapter/password"
	"webstore/internal/adapter/token"
	"webstore/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return newFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func newFakeClockAt(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type mockSeed struct {
	usersFn func(ctx context.Context) ([]domain.User, error)
}

func (m *mockSeed) Users(ctx context.Context) ([]domain.User, error) {
	if m.usersFn != nil {
		return m.usersFn(ctx)
	}
	return nil, nil
}

func seedOf(users ...domain.User) *mockSeed {
	return &mockSeed{usersFn: func(ctx context.Context) ([]domain.User, error) {
		out := make([]domain.User, len(users))
		copy(out, users)
		return out, nil
	}}
}

var kari = domain.User{ID: "1", Email: "kari.karttinen@foo.com", FirstName: "Kari", LastName: "Karttinen", PasswordHash: "87EE0597C41D7AB8C074D7DC4794716D"}
var timo = domain.User{ID: "2", Email: "timo.tillinen@foo.com", FirstName: "Timo", LastName: "Tillinen", PasswordHash: "EE5F0C6F4D191B58497F7DB5C5C9CAF8"}

func newTestHasher(t *testing.T) *password.Hasher {
	t.Helper()
	h, err := password.New(password.Bcrypt, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("password.New: %v", err)
	}
	return h
}

func newTestUserService(t *testing.T, seed ...domain.User) *UserService {
	t.Helper()
	svc := NewUserService(memory.NewUsers(), newTestHasher(t), nil)
	if err := svc.Bootstrap(context.Background(), seedOf(seed...)); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	return svc
}

func newTestSessionService(t *testing.T, clock *fakeClock, ttl time.Duration) *SessionService {
	t.Helper()
	signer, err := token.NewRandomSigner()
	if err != nil {
		t.Fatalf("NewRandomSigner: %v", err)
	}
	return NewSessionService(signer, memory.NewLiveTokens(), ttl, WithClock(clock.Now))
}
