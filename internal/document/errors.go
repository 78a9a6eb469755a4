// internal/document/errors.go
package document

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID     = errors.New("duplicate component id")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrMissingID       = errors.New("component id is empty")
)

// DuplicateIDError names the first id seen twice by ReplaceAll.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("document: duplicate component id %q", e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

// IndexOutOfRangeError is returned by Reorder.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("document: index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }
