package utils

import "github.com/google/uuid"

// NewID returns a fresh unique identifier for outgoing messages. Clients use
// it to deduplicate re-deliveries.
func NewID() string {
	return uuid.NewString()
}
