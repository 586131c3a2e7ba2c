package id

import "github.com/google/uuid"

// NewID returns a random UUIDv4 string; the public identity format for checklists.
func NewID() string {
	return uuid.NewString()
}
