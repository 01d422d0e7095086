package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered random identifiers, used for token
// keys and uploaded image filenames.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
