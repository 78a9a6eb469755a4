// internal/document/ids.go
package document

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator mints component ids.  Implementations must never repeat an id
// within one process.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the default generator: "component-" plus a UUIDv7.
// Version 7 ids are time ordered and monotonic within the process, so rapid
// creates in the same millisecond still differ.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "component-" + id.String()
}

// Sequence yields prefix-1, prefix-2, and so on.  Handy in tests.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.n.Add(1))
}
