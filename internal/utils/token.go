package utils

import "github.com/google/uuid"

// NewToken returns an unguessable token for invitation and password-reset
// links. UUIDv4 carries 122 random bits.
func NewToken() string {
	return uuid.NewString()
}

// NewStorageKey returns a unique key for an attachment blob.
func NewStorageKey() string {
	return uuid.NewString()
}
