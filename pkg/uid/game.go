package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateGameID randomly generates a unique game handle.
func GenerateGameID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateIdentityID generates a cryptographically secure browser identity.
func GenerateIdentityID() string {
	bytes := make([]byte, 32) // 256 bits
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
