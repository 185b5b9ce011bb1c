package utils

import "github.com/google/uuid"

// CreateToken returns an opaque random value, used as the refresh token
// stored in Redis. Two v4 UUIDs back to back give 256 bits of entropy.
func CreateToken() string {
	return uuid.NewString() + uuid.NewString()
}
