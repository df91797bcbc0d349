package types

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a random v4 UUID, used for entity identifiers.
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateRequestID returns a lexicographically sortable id for request
// correlation in logs.
func GenerateRequestID() string {
	return ulid.Make().String()
}
