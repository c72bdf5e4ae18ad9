package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered identifiers for trace ids and
// client-side tombstones.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random v4 when the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	if v7, err := uuid.NewV7(); err == nil {
		return v7.String()
	}

	return uuid.NewString()
}
