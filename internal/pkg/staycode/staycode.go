// Package staycode generates the human-readable codes guests and owners
// use to reference a reservation outside the API (emails, support calls).
package staycode

import (
	"crypto/rand"
	"fmt"
)

// Excludes 0/O/1/I/L to keep codes unambiguous when read aloud.
const alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const codeLength = 8

// New returns a code of the form "ST-XXXXXXXX". Uniqueness is enforced by
// the store; collisions surface as duplicate-key errors and the caller
// generates a fresh code.
func New() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return "ST-" + string(buf), nil
}

// Valid reports whether s looks like a code produced by New.
func Valid(s string) bool {
	if len(s) != len("ST-")+codeLength {
		return false
	}
	if s[:3] != "ST-" {
		return false
	}
	for _, r := range s[3:] {
		found := false
		for _, a := range alphabet {
			if r == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
