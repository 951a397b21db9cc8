// Package password hashes and verifies user passwords.
package password

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"webstore/internal/domain"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Supported algorithms for new hashes.
const (
	Bcrypt   = "bcrypt"
	Argon2id = "argon2id"
)

var legacyDigest = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// Hasher produces hashes with one configured algorithm and verifies any
// format the bootstrap user file may contain.
type Hasher struct {
	algo   string
	cost   int
	params *argon2id.Params
}

var _ domain.PasswordHasher = (*Hasher)(nil)

// New creates a Hasher. bcryptCost is ignored for argon2id.
func New(algo string, bcryptCost int) (*Hasher, error) {
	switch algo {
	case "", Bcrypt:
		if bcryptCost == 0 {
			bcryptCost = bcrypt.DefaultCost
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return &Hasher{algo: Bcrypt, cost: bcryptCost}, nil
	case Argon2id:
		return &Hasher{algo: Argon2id, params: argon2id.DefaultParams}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", algo)
	}
}

// Algorithm reports the algorithm used for new hashes.
func (h *Hasher) Algorithm() string { return h.algo }

// Hash returns an encoded hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	if h.algo == Argon2id {
		return argon2id.CreateHash(plain, h.params)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored value. The stored format is
// detected from its prefix, so seed files may mix algorithms.
func (h *Hasher) Verify(plain, encoded string) bool {
	switch {
	case strings.HasPrefix(encoded, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain)) == nil
	case strings.HasPrefix(encoded, "$argon2id$"):
		ok, err := argon2id.ComparePasswordAndHash(plain, encoded)
		return err == nil && ok
	case legacyDigest.MatchString(encoded):
		return subtle.ConstantTimeCompare([]byte(LegacyDigest(plain)), []byte(strings.ToUpper(encoded))) == 1
	default:
		return false
	}
}

// IsHashed reports whether stored is a recognized hash rather than plaintext.
func (h *Hasher) IsHashed(stored string) bool { return IsEncoded(stored) }

// IsEncoded reports whether stored is a recognized hash rather than plaintext.
func IsEncoded(stored string) bool {
	return strings.HasPrefix(stored, "$2") ||
		strings.HasPrefix(stored, "$argon2id$") ||
		legacyDigest.MatchString(stored)
}

// LegacyDigest returns the upper-case hex MD5 digest of plain. Only used to
// verify accounts from older seed files; new hashes never use it.
func LegacyDigest(plain string) string {
	sum := md5.Sum([]byte(plain))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
