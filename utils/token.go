package utils

import (
	"crypto/rand"
	"fmt"
)

// GenerateSecureToken returns a random hex token for password resets.
func GenerateSecureToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
