// Package token mints and verifies HS256 JSON Web Tokens.
package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"webstore/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// KeySize is the length of generated signing keys in bytes.
const KeySize = 32

// Signer implements domain.TokenSigner with a symmetric key.
type Signer struct {
	key []byte
}

var _ domain.TokenSigner = (*Signer)(nil)

// NewSigner creates a Signer with the given key.
func NewSigner(key []byte) *Signer {
	return &Signer{key: key}
}

// NewRandomSigner creates a Signer with a fresh random key. Tokens do not
// survive a restart.
func NewRandomSigner() (*Signer, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return NewSigner(key), nil
}

// Sign returns a compact token for subject. Each token carries a unique id so
// two tokens minted in the same second differ.
func (s *Signer) Sign(subject string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return raw, nil
}

// Parse verifies signature and expiry against now.
func (s *Signer) Parse(raw string, now time.Time) (domain.Session, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		if claims.ExpiresAt != nil {
			return domain.Session{}, fmt.Errorf("%w at %s", domain.ErrTokenExpired, claims.ExpiresAt.UTC().Format(time.RFC3339))
		}
		return domain.Session{}, domain.ErrTokenExpired
	}
	if err != nil {
		return domain.Session{}, err
	}

	sess := domain.Session{Token: raw, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}
