package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost used for every stored hash.
const DefaultBcryptCost = 12

// Runner executes fn on a bounded set of goroutines and waits for it.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// CredentialService hashes and compares passwords with bcrypt. Both operations
// are CPU bound and run through the Runner.
type CredentialService struct {
	cost   int
	runner Runner
}

func NewCredentialService(cost int, runner Runner) *CredentialService {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &CredentialService{cost: cost, runner: runner}
}

func (s *CredentialService) Hash(ctx context.Context, plaintext string) (string, error) {
	var (
		hash    []byte
		hashErr error
	)
	if err := s.runner.Do(ctx, func() {
		hash, hashErr = bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	}); err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if hashErr != nil {
		return "", fmt.Errorf("hash password: %w", hashErr)
	}
	return string(hash), nil
}

// Compare reports whether plaintext matches hash. A malformed hash is an error,
// a plain mismatch is not.
func (s *CredentialService) Compare(ctx context.Context, plaintext, hash string) (bool, error) {
	var cmpErr error
	if err := s.runner.Do(ctx, func() {
		cmpErr = bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	}); err != nil {
		return false, fmt.Errorf("compare password: %w", err)
	}
	switch {
	case cmpErr == nil:
		return true, nil
	case errors.Is(cmpErr, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", cmpErr)
	}
}
