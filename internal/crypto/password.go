// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// maxPasswordBytes is the longest input bcrypt reads. Longer passwords are
// cut to this length in both Hash and Verify.
const maxPasswordBytes = 72

// ErrInvalidCost is returned by NewBcryptHasher when the requested work
// factor is outside bcrypt's supported range.
var ErrInvalidCost = errors.New("invalid bcrypt cost")

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a [PasswordHasher] backed by bcrypt with the given
// work factor. Zero selects [DefaultCost].
func NewBcryptHasher(cost int) (PasswordHasher, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d (allowed %d..%d)", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &bcryptHasher{cost: cost}, nil
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

func (h *bcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		return b[:maxPasswordBytes]
	}
	return b
}
