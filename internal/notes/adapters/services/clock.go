package services

import (
	"time"

	ports "localnotes/internal/notes/ports/services"
)

var _ ports.Clock = SystemClock{}

// SystemClock returns wall-clock time in UTC.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
