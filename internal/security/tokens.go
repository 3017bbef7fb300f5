package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// InvitationTokenBytes is the entropy of an invitation token
const InvitationTokenBytes = 32

// GenerateToken returns n random bytes hex encoded
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
