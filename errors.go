package st7789

import (
	"errors"
	"fmt"
)

// Errors returned by Dev. Validation errors are returned before anything is
// sent on the bus.
var (
	ErrNotReady               = errors.New("st7789: not ready")
	ErrInvalidScrollPartition = errors.New("st7789: scroll partition must add up to the panel height")
	ErrOffsetOutOfRange       = errors.New("st7789: scroll offset out of range")
	ErrUnsupportedStrokeWidth = errors.New("st7789: stroke width > 1 is not supported for triangles")
	ErrInvalidStyle           = errors.New("st7789: stroke width must be at least 1")
	ErrRegionOutOfBounds      = errors.New("st7789: region out of display bounds")
	ErrInvalidOrientation     = errors.New("st7789: invalid orientation")
)

// BusError reports a failed transport write or pin toggle. The device is
// Faulted after a BusError and must be re-initialized with Init.
type BusError struct {
	Op  string // Command or phase during which the failure happened
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("st7789: bus error during %s: %v", e.Op, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
