package utils

import "github.com/google/uuid"

// NewID generates a unique id for tasks, habits, goals and completion
// records. Services hold it as an injectable field so tests can substitute
// deterministic ids.
func NewID() string {
	return uuid.New().String()
}
