package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateCode returns a URL-safe random token of 2*length hex characters.
func GenerateCode(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
