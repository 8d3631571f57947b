package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"datacenter-inventory/internal/domain/inventory"
)

// InventoryRepository implements inventory.Repository in memory.
// Lists preserve load order; every read returns copies.
type InventoryRepository struct {
	mu sync.RWMutex

	devices     map[string]*inventory.Device
	deviceOrder []string

	ips     map[string]*inventory.IPAddress
	ipOrder []string

	services     map[string]*inventory.Service
	serviceOrder []string

	subnets     map[string]*inventory.Subnet
	subnetOrder []string

	dataCenters map[string]*inventory.DataCenter
	dcOrder     []string
}

// NewInventoryRepository creates an empty inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		devices:     make(map[string]*inventory.Device),
		ips:         make(map[string]*inventory.IPAddress),
		services:    make(map[string]*inventory.Service),
		subnets:     make(map[string]*inventory.Subnet),
		dataCenters: make(map[string]*inventory.DataCenter),
	}
}

var _ inventory.Repository = (*InventoryRepository)(nil)

// Load adds every entity of the dataset. IP addresses are validated first
// and nothing is stored when any entity is rejected.
func (r *InventoryRepository) Load(ctx context.Context, ds inventory.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, ip := range ds.IPs {
		if err := ip.Validate(); err != nil {
			return fmt.Errorf("ip %s: %w", ip.ID, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUniqueLocked(ds); err != nil {
		return err
	}

	for _, d := range ds.Devices {
		r.devices[d.ID] = copyDevice(d)
		r.deviceOrder = append(r.deviceOrder, d.ID)
	}
	for _, ip := range ds.IPs {
		r.ips[ip.ID] = copyIP(ip)
		r.ipOrder = append(r.ipOrder, ip.ID)
	}
	for _, s := range ds.Services {
		r.services[s.ID] = copyService(s)
		r.serviceOrder = append(r.serviceOrder, s.ID)
	}
	for _, s := range ds.Subnets {
		cp := *s
		r.subnets[s.ID] = &cp
		r.subnetOrder = append(r.subnetOrder, s.ID)
	}
	for _, dc := range ds.DataCenters {
		r.dataCenters[dc.ID] = copyDataCenter(dc)
		r.dcOrder = append(r.dcOrder, dc.ID)
	}
	return nil
}

func (r *InventoryRepository) checkUniqueLocked(ds inventory.Dataset) error {
	seen := make(map[string]bool)
	check := func(kind, id string, exists bool) error {
		key := kind + "/" + id
		if id == "" {
			return fmt.Errorf("%s: id is required", kind)
		}
		if exists || seen[key] {
			return fmt.Errorf("%w: %s %s", inventory.ErrAlreadyExists, kind, id)
		}
		seen[key] = true
		return nil
	}

	for _, d := range ds.Devices {
		if err := check("device", d.ID, r.devices[d.ID] != nil); err != nil {
			return err
		}
	}
	for _, ip := range ds.IPs {
		if err := check("ip", ip.ID, r.ips[ip.ID] != nil); err != nil {
			return err
		}
	}
	for _, s := range ds.Services {
		if err := check("service", s.ID, r.services[s.ID] != nil); err != nil {
			return err
		}
	}
	for _, s := range ds.Subnets {
		if err := check("subnet", s.ID, r.subnets[s.ID] != nil); err != nil {
			return err
		}
	}
	for _, dc := range ds.DataCenters {
		if err := check("datacenter", dc.ID, r.dataCenters[dc.ID] != nil); err != nil {
			return err
		}
	}
	return nil
}

func (r *InventoryRepository) GetDevice(ctx context.Context, deviceID string) (*inventory.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[deviceID]
	if !ok {
		return nil, inventory.ErrDeviceNotFound
	}
	return copyDevice(d), nil
}

func (r *InventoryRepository) ListDevices(ctx context.Context) ([]*inventory.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*inventory.Device, 0, len(r.deviceOrder))
	for _, id := range r.deviceOrder {
		out = append(out, copyDevice(r.devices[id]))
	}
	return out, nil
}

func (r *InventoryRepository) UpdateDevice(ctx context.Context, d *inventory.Device) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !d.Status.Valid() {
		return fmt.Errorf("%w: device status %q", inventory.ErrInvalidStatus, d.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[d.ID]; !ok {
		return inventory.ErrDeviceNotFound
	}
	stored := copyDevice(d)
	now := time.Now()
	stored.LastUpdated = &now
	r.devices[d.ID] = stored
	d.LastUpdated = &now
	return nil
}

func (r *InventoryRepository) GetIP(ctx context.Context, ipID string) (*inventory.IPAddress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ip, ok := r.ips[ipID]
	if !ok {
		return nil, inventory.ErrIPNotFound
	}
	return copyIP(ip), nil
}

func (r *InventoryRepository) ListIPs(ctx context.Context) ([]*inventory.IPAddress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*inventory.IPAddress, 0, len(r.ipOrder))
	for _, id := range r.ipOrder {
		out = append(out, copyIP(r.ips[id]))
	}
	return out, nil
}

// UpdateIP replaces an address record after checking its status invariant
func (r *InventoryRepository) UpdateIP(ctx context.Context, ip *inventory.IPAddress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ip.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ips[ip.ID]; !ok {
		return inventory.ErrIPNotFound
	}
	stored := copyIP(ip)
	now := time.Now()
	stored.LastUpdated = &now
	r.ips[ip.ID] = stored
	ip.LastUpdated = &now
	return nil
}

func (r *InventoryRepository) GetService(ctx context.Context, serviceID string) (*inventory.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[serviceID]
	if !ok {
		return nil, inventory.ErrServiceNotFound
	}
	return copyService(s), nil
}

func (r *InventoryRepository) ListServices(ctx context.Context) ([]*inventory.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*inventory.Service, 0, len(r.serviceOrder))
	for _, id := range r.serviceOrder {
		out = append(out, copyService(r.services[id]))
	}
	return out, nil
}

func (r *InventoryRepository) GetSubnet(ctx context.Context, subnetID string) (*inventory.Subnet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.subnets[subnetID]
	if !ok {
		return nil, inventory.ErrSubnetNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *InventoryRepository) ListSubnets(ctx context.Context) ([]*inventory.Subnet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*inventory.Subnet, 0, len(r.subnetOrder))
	for _, id := range r.subnetOrder {
		cp := *r.subnets[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *InventoryRepository) GetDataCenter(ctx context.Context, dataCenterID string) (*inventory.DataCenter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	dc, ok := r.dataCenters[dataCenterID]
	if !ok {
		return nil, inventory.ErrDataCenterNotFound
	}
	return copyDataCenter(dc), nil
}

func (r *InventoryRepository) ListDataCenters(ctx context.Context) ([]*inventory.DataCenter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*inventory.DataCenter, 0, len(r.dcOrder))
	for _, id := range r.dcOrder {
		out = append(out, copyDataCenter(r.dataCenters[id]))
	}
	return out, nil
}

// AddRackToRoom records a newly created rack in the hierarchy
func (r *InventoryRepository) AddRackToRoom(ctx context.Context, dataCenterID, roomID, rackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	dc, ok := r.dataCenters[dataCenterID]
	if !ok {
		return inventory.ErrDataCenterNotFound
	}
	for i := range dc.Rooms {
		if dc.Rooms[i].ID == roomID {
			dc.Rooms[i].RackIDs = append(dc.Rooms[i].RackIDs, rackID)
			return nil
		}
	}
	return inventory.ErrRoomNotFound
}

func copyDevice(d *inventory.Device) *inventory.Device {
	cp := *d
	if d.InstallationDate != nil {
		t := *d.InstallationDate
		cp.InstallationDate = &t
	}
	if d.LastUpdated != nil {
		t := *d.LastUpdated
		cp.LastUpdated = &t
	}
	if d.PowerConsumptionWatts != nil {
		w := *d.PowerConsumptionWatts
		cp.PowerConsumptionWatts = &w
	}
	return &cp
}

func copyIP(ip *inventory.IPAddress) *inventory.IPAddress {
	cp := *ip
	if ip.LastUpdated != nil {
		t := *ip.LastUpdated
		cp.LastUpdated = &t
	}
	return &cp
}

func copyService(s *inventory.Service) *inventory.Service {
	cp := *s
	cp.DeviceIDs = append([]string(nil), s.DeviceIDs...)
	cp.IPIDs = append([]string(nil), s.IPIDs...)
	return &cp
}

func copyDataCenter(dc *inventory.DataCenter) *inventory.DataCenter {
	cp := *dc
	cp.Rooms = make([]inventory.Room, len(dc.Rooms))
	for i, room := range dc.Rooms {
		cp.Rooms[i] = inventory.Room{
			ID:      room.ID,
			Name:    room.Name,
			RackIDs: append([]string(nil), room.RackIDs...),
		}
	}
	return &cp
}
