package app

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"webstore/internal/domain"

	"go.uber.org/zap"
)

// TransportScheme is the Authorization scheme used for encoded tokens.
const TransportScheme = "Basic"

// SessionService issues and validates bearer tokens. A token is accepted
// only while it is both cryptographically valid and present in the live set.
type SessionService struct {
	signer domain.TokenSigner
	live   domain.LiveTokenSet
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger
}

// SessionOption configures a SessionService.
type SessionOption func(*SessionService)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

// WithSessionLogger sets the logger.
func WithSessionLogger(log *zap.Logger) SessionOption {
	return func(s *SessionService) { s.log = log }
}

// NewSessionService creates a SessionService issuing tokens valid for ttl.
func NewSessionService(signer domain.TokenSigner, live domain.LiveTokenSet, ttl time.Duration, opts ...SessionOption) *SessionService {
	s := &SessionService{
		signer: signer,
		live:   live,
		ttl:    ttl,
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateToken mints a token for subject and records it as live.
func (s *SessionService) CreateToken(ctx context.Context, subject string) (string, error) {
	now := s.now()
	expiresAt := ceilSecond(now.Add(s.ttl))
	raw, err := s.signer.Sign(subject, now, expiresAt)
	if err != nil {
		return "", err
	}
	s.live.Add(raw, expiresAt)
	return raw, nil
}

// ValidateToken returns the subject of a presented token. presented is the
// transport form, normally "Basic <base64(token)>". Expired tokens are evicted
// from the live set; every failure is an ErrUnauthenticated error whose
// message is the reason.
func (s *SessionService) ValidateToken(ctx context.Context, presented string) (string, error) {
	raw, err := DecodeTransport(presented)
	if err != nil {
		return "", err
	}

	if !s.live.Contains(raw) {
		s.log.Debug("token not live")
		return "", domain.Errorf(domain.ErrUnauthenticated, "Token not found in my sessions: %s", raw)
	}

	sess, err := s.signer.Parse(raw, s.now())
	if errors.Is(err, domain.ErrTokenExpired) {
		s.live.Remove(raw)
		s.log.Debug("token expired, evicted", zap.Error(err))
		return "", domain.Wrap(domain.ErrUnauthenticated, err, "Token is expired, removing it from my sessions and returning nil: %v", err)
	}
	if err != nil {
		s.log.Warn("token verification failed", zap.Error(err))
		return "", domain.Wrap(domain.ErrUnauthenticated, err, "Some error in session handling: %v", err)
	}
	return sess.Subject, nil
}

// RevokeToken removes the presented token from the live set. Revoking an
// unknown or already revoked token is not an error.
func (s *SessionService) RevokeToken(ctx context.Context, presented string) error {
	raw, err := DecodeTransport(presented)
	if err != nil {
		return err
	}
	s.live.Remove(raw)
	return nil
}

// SweepExpired drops live entries whose expiry has passed.
func (s *SessionService) SweepExpired(ctx context.Context) int {
	n := s.live.PurgeExpired(s.now())
	if n > 0 {
		s.log.Debug("swept expired tokens", zap.Int("count", n), zap.Int("live", s.live.Len()))
	}
	return n
}

// Run sweeps expired tokens every interval until ctx is done. A
// non-positive interval returns immediately.
func (s *SessionService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepExpired(ctx)
		}
	}
}

// LiveCount returns the number of live tokens.
func (s *SessionService) LiveCount() int {
	return s.live.Len()
}

// EncodeTransport returns the Authorization header value for a raw token.
func EncodeTransport(raw string) string {
	return TransportScheme + " " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeTransport extracts the raw token from "<scheme> <base64>". A value
// without a scheme is decoded as a whole. A bare scheme or an empty payload
// means no token was sent.
func DecodeTransport(presented string) (string, error) {
	presented = strings.TrimSpace(presented)
	payload := presented
	if _, after, ok := strings.Cut(presented, " "); ok {
		payload = strings.TrimSpace(after)
	} else if strings.EqualFold(presented, TransportScheme) || strings.EqualFold(presented, "Bearer") {
		payload = ""
	}
	if payload == "" {
		return "", domain.Errorf(domain.ErrUnauthenticated, "No token")
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.Wrap(domain.ErrUnauthenticated, err, "Some error in session handling: %v", err)
	}
	return string(b), nil
}

// ceilSecond rounds t up to a whole second. Token expiry is carried in whole
// seconds, so rounding up keeps a token valid for at least the full ttl and
// lets the live set and the verifier agree on the same instant.
func ceilSecond(t time.Time) time.Time {
	if tr := t.Truncate(time.Second); !tr.Equal(t) {
		return tr.Add(time.Second)
	}
	return t
}
