package plot

import "errors"

var (
	// ErrSlotOutOfRange indicates a slot index outside 0..SlotCount-1.
	ErrSlotOutOfRange = errors.New("plot: slot index out of range")
	// ErrCycle indicates a reference that would close a dependency cycle.
	ErrCycle = errors.New("plot: circular function reference")
	// ErrInvalidReference indicates a reference to a slot that is not valid.
	ErrInvalidReference = errors.New("plot: reference to an invalid function")
	// ErrTooManyReferences indicates runaway substitution, e.g. f(f(f(...))).
	ErrTooManyReferences = errors.New("plot: too many function references")
)
