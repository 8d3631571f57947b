package rack

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds          = errors.New("placement exceeds rack capacity")
	ErrSlotConflict         = errors.New("unit already occupied")
	ErrDeviceNotFound       = errors.New("device not found in rack")
	ErrInvalidSize          = errors.New("invalid device size")
	ErrDeviceAlreadyPlaced  = errors.New("device already placed")
	ErrRackNotFound         = errors.New("rack not found")
	ErrRackAlreadyExists    = errors.New("rack already exists")
	ErrVersionConflict      = errors.New("rack was modified concurrently")
	ErrMissingDeviceID      = errors.New("device id is required")
	ErrCorruptOccupancy     = errors.New("rack occupancy is inconsistent")
	ErrUnexpectedVersionKey = errors.New("expected version names a rack outside the operation")
)

// SizeError reports a device size or rack capacity below one unit
type SizeError struct {
	Size int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %d", ErrInvalidSize, e.Size)
}

func (e *SizeError) Is(target error) bool {
	return target == ErrInvalidSize
}

// BoundsError reports a unit range that does not fit in [1, TotalUnits]
type BoundsError struct {
	RackID     string
	Start      int
	End        int
	TotalUnits int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: units %d-%d do not fit in rack %s (1-%d)",
		ErrOutOfBounds, e.Start, e.End, e.RackID, e.TotalUnits)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// SlotConflictError identifies the lowest occupied unit inside a requested range
type SlotConflictError struct {
	RackID   string
	Position int
	DeviceID string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%s: unit %d of rack %s is held by device %s",
		ErrSlotConflict, e.Position, e.RackID, e.DeviceID)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

// DeviceError ties a device-level failure to a rack
type DeviceError struct {
	RackID   string
	DeviceID string
	Err      error
}

func (e *DeviceError) Error() string {
	if e.RackID == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.DeviceID)
	}
	return fmt.Sprintf("%v: %s (rack %s)", e.Err, e.DeviceID, e.RackID)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// Move phases reported by MoveError
const (
	PhaseSource = "source"
	PhaseTarget = "target"
)

// MoveError tells which half of a move failed
type MoveError struct {
	Phase    string
	RackID   string
	DeviceID string
	Err      error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move of device %s failed on %s rack %s: %v", e.DeviceID, e.Phase, e.RackID, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
