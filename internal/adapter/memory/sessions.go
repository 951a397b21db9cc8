package memory

import (
	"sync"
	"time"

	"webstore/internal/domain"
)

// LiveTokens is the set of issued tokens that have not been revoked or
// evicted, with the expiry recorded at issue time.
type LiveTokens struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

// NewLiveTokens creates an empty set.
func NewLiveTokens() *LiveTokens {
	return &LiveTokens{tokens: make(map[string]time.Time)}
}

var _ domain.LiveTokenSet = (*LiveTokens)(nil)

// Add records token as live until expiresAt.
func (l *LiveTokens) Add(token string, expiresAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens[token] = expiresAt
}

// Contains reports whether token is live.
func (l *LiveTokens) Contains(token string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.tokens[token]
	return ok
}

// Remove deletes token and reports whether it was present. Removing an
// absent token is a no-op.
func (l *LiveTokens) Remove(token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.tokens[token]
	delete(l.tokens, token)
	return ok
}

// PurgeExpired removes every token whose recorded expiry is not after now
// and returns how many were removed.
func (l *LiveTokens) PurgeExpired(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for k, exp := range l.tokens {
		if !now.Before(exp) {
			delete(l.tokens, k)
			n++
		}
	}
	return n
}

// Len returns the number of live tokens.
func (l *LiveTokens) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tokens)
}
