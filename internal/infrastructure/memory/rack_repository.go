package memory

import (
	"context"
	"fmt"
	"sync"

	domainRack "datacenter-inventory/internal/domain/rack"
)

type rackEntry struct {
	mu   sync.Mutex
	rack *domainRack.Rack
}

// RackRepository implements domainRack.Repository in memory.
// Each rack has its own lock; mu guards the rack table and the device index.
// Lock order is rack locks (ascending id) before mu.
type RackRepository struct {
	mu      sync.RWMutex
	racks   map[string]*rackEntry
	order   []string
	devices map[string]string
}

// NewRackRepository creates an empty rack repository
func NewRackRepository() *RackRepository {
	return &RackRepository{
		racks:   make(map[string]*rackEntry),
		devices: make(map[string]string),
	}
}

var _ domainRack.Repository = (*RackRepository)(nil)

func (r *RackRepository) Create(ctx context.Context, rack *domainRack.Rack) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := rack.Verify(); err != nil {
		return fmt.Errorf("failed to create rack: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.racks[rack.ID]; exists {
		return domainRack.ErrRackAlreadyExists
	}

	stored := rack.Clone()
	if err := r.reindexLocked(nil, []*domainRack.Rack{stored}); err != nil {
		return err
	}
	r.racks[stored.ID] = &rackEntry{rack: stored}
	r.order = append(r.order, stored.ID)
	return nil
}

func (r *RackRepository) Get(ctx context.Context, rackID string) (*domainRack.Rack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, err := r.entry(rackID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.rack.Clone(), nil
}

func (r *RackRepository) List(ctx context.Context, filter *domainRack.Filter) ([]*domainRack.Rack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	entries := make([]*rackEntry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, r.racks[id])
	}
	r.mu.RUnlock()

	racks := make([]*domainRack.Rack, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		rack := entry.rack.Clone()
		entry.mu.Unlock()

		if filter != nil {
			if filter.DataCenterID != "" && rack.Location.DataCenterID != filter.DataCenterID {
				continue
			}
			if filter.RoomID != "" && rack.Location.RoomID != filter.RoomID {
				continue
			}
		}
		racks = append(racks, rack)
	}
	return racks, nil
}

// Update runs fn against a copy of the rack and commits it when fn succeeds.
// A non-nil expectedVersion must match the stored version.
func (r *RackRepository) Update(ctx context.Context, rackID string, expectedVersion *uint64, fn func(*domainRack.Rack) error) (*domainRack.Rack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, err := r.entry(rackID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if expectedVersion != nil && *expectedVersion != entry.rack.Version {
		return nil, versionConflict(rackID, *expectedVersion, entry.rack.Version)
	}

	working := entry.rack.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}

	if err := r.commit([]*rackEntry{entry}, []*domainRack.Rack{working}); err != nil {
		return nil, err
	}
	return working.Clone(), nil
}

// UpdatePair runs fn against copies of two racks and commits both or neither.
// When sourceID equals targetID fn receives the same copy twice. The
// committed racks are returned; expected may only name the two racks.
func (r *RackRepository) UpdatePair(ctx context.Context, sourceID, targetID string, expected map[string]uint64, fn func(source, target *domainRack.Rack) error) (*domainRack.Rack, *domainRack.Rack, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	for rackID := range expected {
		if rackID != sourceID && rackID != targetID {
			return nil, nil, fmt.Errorf("%w: %s", domainRack.ErrUnexpectedVersionKey, rackID)
		}
	}

	if sourceID == targetID {
		var version *uint64
		if v, ok := expected[sourceID]; ok {
			version = &v
		}
		rack, err := r.Update(ctx, sourceID, version, func(rack *domainRack.Rack) error {
			return fn(rack, rack)
		})
		if err != nil {
			return nil, nil, err
		}
		return rack, rack, nil
	}

	source, err := r.entry(sourceID)
	if err != nil {
		return nil, nil, err
	}
	target, err := r.entry(targetID)
	if err != nil {
		return nil, nil, err
	}

	first, second := source, target
	if targetID < sourceID {
		first, second = target, source
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	for _, entry := range []*rackEntry{source, target} {
		if v, ok := expected[entry.rack.ID]; ok && v != entry.rack.Version {
			return nil, nil, versionConflict(entry.rack.ID, v, entry.rack.Version)
		}
	}

	workingSource := source.rack.Clone()
	workingTarget := target.rack.Clone()
	if err := fn(workingSource, workingTarget); err != nil {
		return nil, nil, err
	}

	if err := r.commit([]*rackEntry{source, target}, []*domainRack.Rack{workingSource, workingTarget}); err != nil {
		return nil, nil, err
	}
	return workingSource.Clone(), workingTarget.Clone(), nil
}

// LocateDevice finds the rack holding deviceID
func (r *RackRepository) LocateDevice(ctx context.Context, deviceID string) (string, domainRack.Placement, error) {
	if err := ctx.Err(); err != nil {
		return "", domainRack.Placement{}, err
	}

	r.mu.RLock()
	rackID, ok := r.devices[deviceID]
	r.mu.RUnlock()
	if !ok {
		return "", domainRack.Placement{}, &domainRack.DeviceError{DeviceID: deviceID, Err: domainRack.ErrDeviceNotFound}
	}

	rack, err := r.Get(ctx, rackID)
	if err != nil {
		return "", domainRack.Placement{}, err
	}
	placement, ok := rack.Placement(deviceID)
	if !ok {
		return "", domainRack.Placement{}, &domainRack.DeviceError{DeviceID: deviceID, Err: domainRack.ErrDeviceNotFound}
	}
	return rackID, placement, nil
}

func (r *RackRepository) entry(rackID string) (*rackEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.racks[rackID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domainRack.ErrRackNotFound, rackID)
	}
	return entry, nil
}

// commit swaps the working copies in. Callers hold every entry lock.
func (r *RackRepository) commit(entries []*rackEntry, working []*domainRack.Rack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := make([]*domainRack.Rack, len(entries))
	for i, entry := range entries {
		before[i] = entry.rack
	}
	if err := r.reindexLocked(before, working); err != nil {
		return err
	}

	for i, entry := range entries {
		working[i].ID = entry.rack.ID
		working[i].Version = entry.rack.Version + 1
		entry.rack = working[i]
	}
	return nil
}

// reindexLocked replaces the index entries of the racks in before with the
// devices mounted in after. A device mounted in any other rack is rejected.
func (r *RackRepository) reindexLocked(before, after []*domainRack.Rack) error {
	touched := make(map[string]bool, len(after))
	for _, rack := range after {
		touched[rack.ID] = true
	}

	placed := make(map[string]string)
	for _, rack := range after {
		for _, deviceID := range rack.DeviceIDs() {
			if other, dup := placed[deviceID]; dup && other != rack.ID {
				return &domainRack.DeviceError{RackID: other, DeviceID: deviceID, Err: domainRack.ErrDeviceAlreadyPlaced}
			}
			if owner, ok := r.devices[deviceID]; ok && !touched[owner] {
				return &domainRack.DeviceError{RackID: owner, DeviceID: deviceID, Err: domainRack.ErrDeviceAlreadyPlaced}
			}
			placed[deviceID] = rack.ID
		}
	}

	for _, rack := range before {
		for _, deviceID := range rack.DeviceIDs() {
			delete(r.devices, deviceID)
		}
	}
	for deviceID, rackID := range placed {
		r.devices[deviceID] = rackID
	}
	return nil
}

func versionConflict(rackID string, expected, actual uint64) error {
	return fmt.Errorf("%w: rack %s is at version %d, expected %d", domainRack.ErrVersionConflict, rackID, actual, expected)
}
