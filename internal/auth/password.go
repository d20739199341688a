package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// PasswordScheme stores and compares user passwords.
type PasswordScheme interface {
	Hash(plain string) (string, error)
	Verify(stored, plain string) bool
}

// Plaintext stores passwords as given and compares them exactly.
type Plaintext struct{}

func (Plaintext) Hash(plain string) (string, error) { return plain, nil }
func (Plaintext) Verify(stored, plain string) bool  { return stored == plain }

// Bcrypt stores bcrypt hashes. Stored values that are not bcrypt hashes are
// compared as plaintext so seed accounts keep working.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

func (Bcrypt) Verify(stored, plain string) bool {
	if _, err := bcrypt.Cost([]byte(stored)); err != nil {
		return stored == plain
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// SchemeFor returns the scheme registered under name.
func SchemeFor(name string) (PasswordScheme, error) {
	switch name {
	case "", SchemePlaintext:
		return Plaintext{}, nil
	case SchemeBcrypt:
		return Bcrypt{}, nil
	}
	return nil, fmt.Errorf("unknown password scheme %q", name)
}
