package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// EmailCodeBytes is the entropy of an email code; the hex form is twice as long.
const EmailCodeBytes = 32

// GenEmailCode returns 32 random bytes hex-encoded (64 characters).
func GenEmailCode() (string, error) {
	b := make([]byte, EmailCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
