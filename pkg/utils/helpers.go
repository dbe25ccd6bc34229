package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex generates a random hexadecimal string of length 2n.
func RandomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RoomToken generates a short URL-safe room identifier, unique with
// high probability, meant to be shared out-of-band as a link.
func RoomToken() string {
	return RandomHex(3)
}
