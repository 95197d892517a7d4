// Package service contains infrastructure services: identifier generation
// and the gamification award service that sits between commands and the
// points ledger.
package service

import "github.com/google/uuid"

// IDGenerator produces unique string identifiers.
type IDGenerator interface {
	GenerateID() string
}

// UUIDGenerator implements IDGenerator with random UUIDs.
type UUIDGenerator struct{}

// NewIDGenerator creates a UUIDGenerator.
func NewIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// GenerateID returns a new random UUID string.
func (g *UUIDGenerator) GenerateID() string {
	return uuid.New().String()
}
