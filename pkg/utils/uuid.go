package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateOrderLabel generates a short human-readable order label
func GenerateOrderLabel() string {
	return "CMD-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateGuestID generates an identifier for guest submissions
func GenerateGuestID() string {
	return "guest-" + uuid.New().String()[:8]
}
