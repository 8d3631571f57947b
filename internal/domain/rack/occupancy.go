package rack

import "fmt"

// AvailableStartPositions returns, lowest first, every start position where a
// device of the given size fits on free units. An empty result is not an error.
func (r *Rack) AvailableStartPositions(size int) ([]int, error) {
	if size < 1 {
		return nil, &SizeError{Size: size}
	}

	positions := []int{}
	run := 0
	for _, u := range r.units {
		if u.Occupant != nil {
			run = 0
			continue
		}
		run++
		if run >= size {
			positions = append(positions, u.Position-size+1)
		}
	}
	return positions, nil
}

// Install mounts a device on units StartPosition..StartPosition+DeviceSize-1.
// The rack is left untouched when any check fails.
func (r *Rack) Install(p Placement) error {
	if err := r.checkPlacement(p, ""); err != nil {
		return err
	}
	r.write(p)
	return nil
}

// Uninstall frees every unit held by deviceID and returns the removed placement
func (r *Rack) Uninstall(deviceID string) (Placement, error) {
	current, ok := r.Placement(deviceID)
	if !ok {
		return Placement{}, &DeviceError{RackID: r.ID, DeviceID: deviceID, Err: ErrDeviceNotFound}
	}
	r.clear(deviceID)
	return current, nil
}

// Move relocates deviceID from src to newStart on dst, keeping its size.
// Pass the same *Rack twice to reposition a device inside one rack; its own
// units then count as free. Both racks are unchanged when the move fails.
func Move(src, dst *Rack, deviceID string, newStart int) (Placement, error) {
	current, ok := src.Placement(deviceID)
	if !ok {
		return Placement{}, &MoveError{
			Phase:    PhaseSource,
			RackID:   src.ID,
			DeviceID: deviceID,
			Err:      &DeviceError{RackID: src.ID, DeviceID: deviceID, Err: ErrDeviceNotFound},
		}
	}

	target := current
	target.StartPosition = newStart

	ignore := ""
	if src == dst {
		ignore = deviceID
	}
	if err := dst.checkPlacement(target, ignore); err != nil {
		return Placement{}, &MoveError{Phase: PhaseTarget, RackID: dst.ID, DeviceID: deviceID, Err: err}
	}

	src.clear(deviceID)
	dst.write(target)
	return target, nil
}

// checkPlacement validates p against the current occupancy. Units held by
// ignoreDeviceID are treated as free.
func (r *Rack) checkPlacement(p Placement, ignoreDeviceID string) error {
	if p.DeviceSize < 1 {
		return &SizeError{Size: p.DeviceSize}
	}
	if p.DeviceID == "" {
		return ErrMissingDeviceID
	}
	if p.StartPosition < 1 || p.EndPosition() > r.TotalUnits {
		return &BoundsError{RackID: r.ID, Start: p.StartPosition, End: p.EndPosition(), TotalUnits: r.TotalUnits}
	}
	if p.DeviceID != ignoreDeviceID {
		if _, placed := r.Placement(p.DeviceID); placed {
			return &DeviceError{RackID: r.ID, DeviceID: p.DeviceID, Err: ErrDeviceAlreadyPlaced}
		}
	}

	for pos := p.StartPosition; pos <= p.EndPosition(); pos++ {
		occ := r.units[pos-1].Occupant
		if occ != nil && occ.DeviceID != ignoreDeviceID {
			return &SlotConflictError{RackID: r.ID, Position: pos, DeviceID: occ.DeviceID}
		}
	}
	return nil
}

func (r *Rack) write(p Placement) {
	for pos := p.StartPosition; pos <= p.EndPosition(); pos++ {
		r.units[pos-1].Occupant = p.occupant()
	}
}

func (r *Rack) clear(deviceID string) {
	for i := range r.units {
		if r.units[i].Occupant != nil && r.units[i].Occupant.DeviceID == deviceID {
			r.units[i].Occupant = nil
		}
	}
}

// Verify checks the structural invariants of the rack: one unit per position,
// and every device holding exactly DeviceSize contiguous units with identical
// occupant fields.
func (r *Rack) Verify() error {
	if r.TotalUnits < 1 {
		return &SizeError{Size: r.TotalUnits}
	}
	if len(r.units) != r.TotalUnits {
		return fmt.Errorf("%w: rack %s has %d units, want %d", ErrCorruptOccupancy, r.ID, len(r.units), r.TotalUnits)
	}

	type span struct {
		first, last, count int
		occ                Occupant
	}
	spans := make(map[string]*span)

	for i, u := range r.units {
		if u.Position != i+1 {
			return fmt.Errorf("%w: rack %s slot %d reports position %d", ErrCorruptOccupancy, r.ID, i+1, u.Position)
		}
		if u.Occupant == nil {
			continue
		}
		occ := *u.Occupant
		if occ.DeviceID == "" {
			return fmt.Errorf("%w: rack %s unit %d has an occupant without device id", ErrCorruptOccupancy, r.ID, u.Position)
		}
		if occ.DeviceSize < 1 {
			return fmt.Errorf("%w: rack %s unit %d: device %s has size %d", ErrCorruptOccupancy, r.ID, u.Position, occ.DeviceID, occ.DeviceSize)
		}

		s, ok := spans[occ.DeviceID]
		if !ok {
			spans[occ.DeviceID] = &span{first: u.Position, last: u.Position, count: 1, occ: occ}
			continue
		}
		if s.last != u.Position-1 {
			return fmt.Errorf("%w: rack %s: device %s is not contiguous at unit %d", ErrCorruptOccupancy, r.ID, occ.DeviceID, u.Position)
		}
		if s.occ != occ {
			return fmt.Errorf("%w: rack %s: device %s has differing fields at unit %d", ErrCorruptOccupancy, r.ID, occ.DeviceID, u.Position)
		}
		s.last = u.Position
		s.count++
	}

	for id, s := range spans {
		if s.count != s.occ.DeviceSize {
			return fmt.Errorf("%w: rack %s: device %s holds %d units, size is %d", ErrCorruptOccupancy, r.ID, id, s.count, s.occ.DeviceSize)
		}
	}
	return nil
}
