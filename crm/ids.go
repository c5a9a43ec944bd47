// ABOUTME: Identifier sources for repositories
// ABOUTME: Monotonic integer sequences and ULID-based string ids
package crm

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDSource hands out fresh identifiers. Observe tells the source about an id
// that already exists so it is never handed out again.
type IDSource[K comparable] interface {
	Next() K
	Observe(id K)
}

// IntSequence is a strictly increasing integer counter.
type IntSequence struct {
	mu   sync.Mutex
	last int64
}

func (s *IntSequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

func (s *IntSequence) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}

// ULIDSource produces lexically increasing ids of the form prefix+ulid.
type ULIDSource struct {
	mu      sync.Mutex
	prefix  string
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

func NewULIDSource(prefix string) *ULIDSource {
	return &ULIDSource{
		prefix:  prefix,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     time.Now,
	}
}

func (s *ULIDSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefix + strings.ToLower(ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String())
}

// Observe is a no-op: ULIDs do not collide with earlier ids.
func (s *ULIDSource) Observe(string) {}
