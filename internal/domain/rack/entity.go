package rack

import "fmt"

// Location places a rack inside the data center hierarchy
type Location struct {
	DataCenterID   string
	DataCenterName string
	RoomID         string
	RoomName       string
}

// Occupant is the device currently mounted in a unit
type Occupant struct {
	DeviceID    string
	DeviceName  string
	DeviceSize  int
	ServiceID   string
	ServiceName string
}

// Unit represents one rack slot. A unit is free when Occupant is nil.
type Unit struct {
	Position int
	Occupant *Occupant
}

// IsFree reports whether no device occupies the unit
func (u Unit) IsFree() bool {
	return u.Occupant == nil
}

// Placement describes a device mounted on a contiguous run of units
type Placement struct {
	DeviceID      string
	DeviceName    string
	DeviceSize    int
	ServiceID     string
	ServiceName   string
	StartPosition int
}

// EndPosition returns the highest unit covered by the placement
func (p Placement) EndPosition() int {
	return p.StartPosition + p.DeviceSize - 1
}

func (p Placement) occupant() *Occupant {
	return &Occupant{
		DeviceID:    p.DeviceID,
		DeviceName:  p.DeviceName,
		DeviceSize:  p.DeviceSize,
		ServiceID:   p.ServiceID,
		ServiceName: p.ServiceName,
	}
}

// Rack represents a physical cabinet with a fixed number of unit slots.
// units[i] always holds position i+1.
type Rack struct {
	ID         string
	Name       string
	Location   Location
	TotalUnits int
	Version    uint64

	units []Unit
}

// NewRack creates an empty rack with totalUnits free slots
func NewRack(id, name string, totalUnits int, location Location) (*Rack, error) {
	if id == "" {
		return nil, fmt.Errorf("rack id is required")
	}
	if totalUnits < 1 {
		return nil, &SizeError{Size: totalUnits}
	}

	units := make([]Unit, totalUnits)
	for i := range units {
		units[i] = Unit{Position: i + 1}
	}

	return &Rack{
		ID:         id,
		Name:       name,
		Location:   location,
		TotalUnits: totalUnits,
		units:      units,
	}, nil
}

// Units returns a copy of the unit slots, bottom to top
func (r *Rack) Units() []Unit {
	out := make([]Unit, len(r.units))
	for i, u := range r.units {
		out[i] = Unit{Position: u.Position}
		if u.Occupant != nil {
			occ := *u.Occupant
			out[i].Occupant = &occ
		}
	}
	return out
}

// Unit returns the slot at position
func (r *Rack) Unit(position int) (Unit, bool) {
	if position < 1 || position > r.TotalUnits {
		return Unit{}, false
	}
	u := r.units[position-1]
	if u.Occupant != nil {
		occ := *u.Occupant
		u.Occupant = &occ
	}
	return u, true
}

// Placements lists every mounted device ordered by start position
func (r *Rack) Placements() []Placement {
	var out []Placement
	seen := make(map[string]bool)
	for _, u := range r.units {
		if u.Occupant == nil || seen[u.Occupant.DeviceID] {
			continue
		}
		seen[u.Occupant.DeviceID] = true
		out = append(out, placementFrom(u.Position, u.Occupant))
	}
	return out
}

// Placement returns the placement of deviceID in this rack
func (r *Rack) Placement(deviceID string) (Placement, bool) {
	for _, u := range r.units {
		if u.Occupant != nil && u.Occupant.DeviceID == deviceID {
			return placementFrom(u.Position, u.Occupant), true
		}
	}
	return Placement{}, false
}

// DeviceIDs returns the distinct devices mounted in the rack
func (r *Rack) DeviceIDs() []string {
	placements := r.Placements()
	ids := make([]string, len(placements))
	for i, p := range placements {
		ids[i] = p.DeviceID
	}
	return ids
}

// Clone returns a deep copy of the rack
func (r *Rack) Clone() *Rack {
	c := *r
	c.units = r.Units()
	return &c
}

func placementFrom(start int, occ *Occupant) Placement {
	return Placement{
		DeviceID:      occ.DeviceID,
		DeviceName:    occ.DeviceName,
		DeviceSize:    occ.DeviceSize,
		ServiceID:     occ.ServiceID,
		ServiceName:   occ.ServiceName,
		StartPosition: start,
	}
}
