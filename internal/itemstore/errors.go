package itemstore

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptData matches any *CorruptDataError.
	ErrCorruptData = errors.New("corrupt item document")
	// ErrIndexOutOfRange matches any *IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("item index out of range")
	// ErrInvalidItem is returned when an item violates its invariants.
	ErrInvalidItem = errors.New("invalid item")
	// ErrNegativeGuests is returned for a negative extra guests count.
	ErrNegativeGuests = errors.New("negative extra guests count")
)

// CorruptDataError reports a backing (or seed) file that exists but does not
// hold a valid document.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt item document %s: %v", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }

// IndexOutOfRangeError reports a positional index that is not valid for the
// current item list.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("item index %d out of range (list has %d items)", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }
