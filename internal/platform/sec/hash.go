// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordMaxBytes is the longest input bcrypt accepts.
const PasswordMaxBytes = 72

// ErrPasswordTooLong is returned for passwords over [PasswordMaxBytes] bytes.
// Multi-byte characters count per byte, so a short-looking password can hit it.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// passwordCost is the bcrypt work factor for new hashes.
const passwordCost = bcrypt.DefaultCost

// referenceHash is compared against when no account exists, so unknown
// emails are rejected in the same time as wrong passwords.
var referenceHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("stockroom-reference-password"), passwordCost)
	return hash
})

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(plainTextPassword string) (string, error) {
	if len(plainTextPassword) > PasswordMaxBytes {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), passwordCost)
	if err != nil {
		return "", fmt.Errorf("sec: hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash reports whether plainTextPassword matches existingHash.
// Malformed hashes never match.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// SpendPasswordCheck performs one throwaway bcrypt comparison. Call it on the
// unknown-account path of a login.
func SpendPasswordCheck(plainTextPassword string) {
	_ = bcrypt.CompareHashAndPassword(referenceHash(), []byte(plainTextPassword))
}
