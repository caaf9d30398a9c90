// Package id generates the identifiers of traversals, steps and vertices. Identifiers
// are ULIDs drawn from a monotonic entropy source, so identifiers generated by one
// process sort in generation order.
package id

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mutex   sync.Mutex
	entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a new identifier. It falls back to a non-monotonic ULID when the
// monotonic entropy of the current millisecond is exhausted.
func New() string {
	mutex.Lock()
	defer mutex.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return ulid.Make().String()
	}

	return id.String()
}
