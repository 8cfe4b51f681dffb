// Package id generates and canonicalizes the UUID identifiers used for every row.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generate creates a random (version 4) UUID in canonical string form.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return u.String(), nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate() string {
	id, err := Generate()
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// Canonical parses s as a UUID and returns its lowercase hyphenated form.
func Canonical(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse uuid %q: %w", s, err)
	}
	return u.String(), nil
}
