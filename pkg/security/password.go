// Package security contains everything related to the security of user data
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	AlgBcrypt   = "bcrypt"
	AlgArgon2id = "argon2id"

	DefaultBcryptCost = 12
)

var ErrUnknownHash = errors.New("unknown password hash format")

type argonParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// Hasher produces salted, adaptive password hashes. New hashes use
// Algorithm, verification accepts any supported format so changing the
// algorithm doesn't lock existing users out
type Hasher struct {
	Algorithm  string
	BcryptCost int

	argon argonParams
}

func NewHasher(algorithm string) (*Hasher, error) {
	switch algorithm {
	case "", AlgBcrypt:
		algorithm = AlgBcrypt
	case AlgArgon2id:
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", algorithm)
	}

	return &Hasher{
		Algorithm:  algorithm,
		BcryptCost: DefaultBcryptCost,
		argon: argonParams{
			Memory:      64 * 1024,
			Iterations:  3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
	}, nil
}

func (h *Hasher) Hash(p string) (string, error) {
	if h.Algorithm == AlgArgon2id {
		return h.argonHash(p)
	}

	b, err := bcrypt.GenerateFromPassword([]byte(p), h.BcryptCost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Verify compares a password p with the stored encoded hash e. A mismatch
// is not an error, a hash that can't be parsed is
func (h *Hasher) Verify(p, e string) (bool, error) {
	switch {
	case strings.HasPrefix(e, "$argon2id$"):
		return argonVerify(p, e)
	case strings.HasPrefix(e, "$2a$"), strings.HasPrefix(e, "$2b$"), strings.HasPrefix(e, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(e), []byte(p))
		if err == nil {
			return true, nil
		}

		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}

		return false, err
	default:
		return false, ErrUnknownHash
	}
}

func (h *Hasher) argonHash(p string) (string, error) {
	salt := make([]byte, h.argon.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	a := h.argon
	hash := argon2.IDKey([]byte(p), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.Memory, a.Iterations, a.Parallelism, b64Salt, b64Hash), nil
}

// argonVerify checks p against a PHC-style encoded argon2id hash
func argonVerify(p, e string) (bool, error) {
	parts := strings.Split(e, "$")
	if len(parts) != 6 {
		return false, errors.New("invalid hash format")
	}

	var memory, iterations uint32
	var parallelism uint8

	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		return false, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}

	calcHash := argon2.IDKey([]byte(p), salt, iterations, memory, parallelism, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, calcHash) == 1, nil
}
