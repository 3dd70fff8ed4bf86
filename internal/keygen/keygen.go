// Package keygen generates the unique keys that identify routes and navigator
// states. Keys are opaque to every consumer: nothing may parse one back apart,
// they exist only for identity comparison and map lookups.
package keygen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique keys with a readable prefix. The prefix is the
// route or navigator type name, which keeps persisted state files and debug
// logs legible without making the key itself meaningful.
type Generator interface {
	// Key returns a fresh unique key of the form "<prefix>-<suffix>".
	Key(prefix string) string
}

// Random is the production generator. Suffixes are UUIDv4, so keys are unique
// across processes and restarts.
type Random struct{}

// Key returns "<prefix>-<uuid>".
func (Random) Key(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// Sequential is a deterministic generator for tests. Suffixes count up from 1
// per generator instance, so tests can assert on exact keys.
type Sequential struct {
	n atomic.Uint64
}

// Key returns "<prefix>-<n>" with n increasing per call.
func (s *Sequential) Key(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, s.n.Add(1))
}

// active is the generator used by New. Swapped out in tests via SetGenerator.
var active atomic.Pointer[holder]

type holder struct{ g Generator }

func init() {
	active.Store(&holder{g: Random{}})
}

// New returns a fresh unique key using the active generator.
func New(prefix string) string {
	return active.Load().g.Key(prefix)
}

// SetGenerator replaces the active generator and returns a restore function.
// Intended for tests that need deterministic keys.
func SetGenerator(g Generator) (restore func()) {
	prev := active.Swap(&holder{g: g})
	return func() { active.Store(prev) }
}
