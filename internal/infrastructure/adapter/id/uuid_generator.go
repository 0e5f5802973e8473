package id

import (
	"github.com/google/uuid"

	"github.com/sportxbet/tipstore/internal/domain/port/core"
)

// UUIDGenerator implements the IDGenerator interface with random UUIDs
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new uuid-based id generator
func NewUUIDGenerator() core.IDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh random UUID string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
