package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// New returns a random opaque identifier.
func New() string {
	return uuid.NewString()
}

// Sequence returns a generator yielding prefix-1, prefix-2, ...
// Useful where IDs must be predictable, e.g. in tests and fixtures.
func Sequence(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
