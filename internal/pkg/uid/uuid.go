package uid

import "github.com/google/uuid"

// UUID hands out time-ordered version 7 UUIDs.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID { return &UUID{} }

// Generate returns a v7 UUID, or a random v4 if the clock read fails.
func (*UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// Valid reports whether s is a canonical UUID string.
func Valid(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.String() == s
}
