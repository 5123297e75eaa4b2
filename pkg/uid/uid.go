package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

func randomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateGameID returns 32 hex characters. crypto/rand does not fail on
// supported platforms, so a failure here is fatal.
func GenerateGameID() string {
	id, err := randomHex(16)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateSessionID returns 64 hex characters for a login session.
func GenerateSessionID() (string, error) {
	return randomHex(32)
}
