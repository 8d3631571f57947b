package rack

import "context"

// Repository defines storage operations for racks.
// Mutations run against a copy of the rack and are committed only when fn
// returns nil, so a failed operation never leaves partial writes behind.
type Repository interface {
	Create(ctx context.Context, rack *Rack) error
	Get(ctx context.Context, rackID string) (*Rack, error)
	List(ctx context.Context, filter *Filter) ([]*Rack, error)
	Update(ctx context.Context, rackID string, expectedVersion *uint64, fn func(*Rack) error) (*Rack, error)
	UpdatePair(ctx context.Context, sourceID, targetID string, expected map[string]uint64, fn func(source, target *Rack) error) (*Rack, *Rack, error)
	LocateDevice(ctx context.Context, deviceID string) (string, Placement, error)
}

// Filter represents filtering options for listing racks
type Filter struct {
	DataCenterID string
	RoomID       string
}
