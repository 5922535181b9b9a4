// Package security provides one-way password hashing.
//
// New digests are produced with the configured algorithm; Verify accepts
// digests of any supported algorithm, so switching algorithms does not lock
// out users whose passwords were hashed before the switch.
package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	// DefaultBcryptCost is 10 salt rounds, the cost existing account digests use.
	DefaultBcryptCost = 10

	argon2Prefix = "$argon2"

	// bcryptMaxPasswordBytes is the input limit of bcrypt. Longer passwords are
	// truncated, the same as the digests of existing accounts.
	bcryptMaxPasswordBytes = 72
)

var ErrEmptyPassword = errors.New("password must not be empty")

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// NewPasswordHasher returns a hasher producing digests with the given algorithm.
func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	switch strings.ToLower(algorithm) {
	case "", AlgorithmBcrypt:
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return &BcryptHasher{cost: bcryptCost}, nil
	case AlgorithmArgon2id:
		return NewArgon2Hasher(), nil
	default:
		return nil, fmt.Errorf("unsupported password algorithm %q", algorithm)
	}
}

// BcryptHasher hashes passwords with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a BcryptHasher with the given cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	digest, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}

	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return verify(password, hash)
}

// Argon2Hasher hashes passwords with argon2id using the library defaults.
type Argon2Hasher struct {
	config argon2.Config
}

// NewArgon2Hasher returns an Argon2Hasher.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{config: argon2.DefaultConfig()}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("argon2 hash: %w", err)
	}

	return string(encoded), nil
}

func (h *Argon2Hasher) Verify(password, hash string) bool {
	return verify(password, hash)
}

// verify dispatches on the digest format. Malformed digests never match.
func verify(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}

	if strings.HasPrefix(hash, argon2Prefix) {
		ok, err := argon2.VerifyEncoded([]byte(password), []byte(hash))
		return err == nil && ok
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxPasswordBytes {
		return b[:bcryptMaxPasswordBytes]
	}

	return b
}
