package fixture

import (
	"context"
	"fmt"
	"time"

	"datacenter-inventory/internal/domain/inventory"
	domainRack "datacenter-inventory/internal/domain/rack"
)

// Fixture is a complete seed: racks with their occupancy plus the inventory
type Fixture struct {
	Racks     []*domainRack.Rack
	Inventory inventory.Dataset
}

// InventoryLoader is satisfied by repositories that accept a bulk dataset
type InventoryLoader interface {
	Load(ctx context.Context, ds inventory.Dataset) error
}

// Seed stores every rack and the inventory dataset
func Seed(ctx context.Context, f *Fixture, racks domainRack.Repository, inv InventoryLoader) error {
	if err := inv.Load(ctx, f.Inventory); err != nil {
		return fmt.Errorf("failed to seed inventory: %w", err)
	}
	for _, r := range f.Racks {
		if err := racks.Create(ctx, r); err != nil {
			return fmt.Errorf("failed to seed rack %s: %w", r.ID, err)
		}
	}
	return nil
}

type rackSpec struct {
	id, name string
}

type roomSpec struct {
	id, name string
	racks    []rackSpec
}

type dcSpec struct {
	id, name string
	rooms    []roomSpec
}

var hierarchy = []dcSpec{
	{id: "dc-a", name: "DC-A", rooms: []roomSpec{
		{id: "room-1", name: "Room 1", racks: []rackSpec{{"rack-1", "Rack 1"}, {"rack-2", "Rack 2"}, {"rack-3", "Rack 3"}}},
		{id: "room-2", name: "Room 2", racks: []rackSpec{{"rack-4", "Rack 1"}, {"rack-5", "Rack 2"}, {"rack-6", "Rack 3"}}},
	}},
	{id: "dc-b", name: "DC-B", rooms: []roomSpec{
		{id: "room-a", name: "Room A", racks: []rackSpec{{"rack-7", "Rack 1"}, {"rack-8", "Rack 2"}, {"rack-9", "Rack 3"}}},
		{id: "room-b", name: "Room B", racks: []rackSpec{{"rack-10", "Rack 1"}, {"rack-11", "Rack 2"}, {"rack-12", "Rack 3"}}},
	}},
}

// StandardRackUnits is the height of every rack in the default data set
const StandardRackUnits = 42

// Default builds the reference data set: two data centers with two rooms
// each, three 42U racks per room, five devices of which three are mounted.
func Default() *Fixture {
	f := &Fixture{}

	for _, dc := range hierarchy {
		entity := &inventory.DataCenter{ID: dc.id, Name: dc.name}
		for _, room := range dc.rooms {
			r := inventory.Room{ID: room.id, Name: room.name}
			for _, rs := range room.racks {
				rack, err := domainRack.NewRack(rs.id, rs.name, StandardRackUnits, domainRack.Location{
					DataCenterID:   dc.id,
					DataCenterName: dc.name,
					RoomID:         room.id,
					RoomName:       room.name,
				})
				if err != nil {
					panic(err)
				}
				f.Racks = append(f.Racks, rack)
				r.RackIDs = append(r.RackIDs, rs.id)
			}
			entity.Rooms = append(entity.Rooms, r)
		}
		f.Inventory.DataCenters = append(f.Inventory.DataCenters, entity)
	}

	updated := day("2023-05-15")

	f.Inventory.Subnets = []*inventory.Subnet{
		{ID: "subnet-1", CIDR: "192.168.1.0/24", Description: "Primary Network"},
		{ID: "subnet-2", CIDR: "192.168.2.0/24", Description: "Secondary Network"},
		{ID: "subnet-3", CIDR: "10.0.0.0/24", Description: "Management Network"},
	}

	f.Inventory.IPs = []*inventory.IPAddress{
		{ID: "ip-1", Address: "192.168.1.10", Subnet: "192.168.1.0/24", Gateway: "192.168.1.1", Status: inventory.IPAssigned, DeviceID: "dev-1", ServiceID: "svc-1", LastUpdated: updated},
		{ID: "ip-2", Address: "192.168.1.11", Subnet: "192.168.1.0/24", Gateway: "192.168.1.1", Status: inventory.IPAssigned, DeviceID: "dev-2", ServiceID: "svc-2", LastUpdated: updated},
		{ID: "ip-3", Address: "192.168.1.12", Subnet: "192.168.1.0/24", Gateway: "192.168.1.1", Status: inventory.IPAssigned, DeviceID: "dev-3", ServiceID: "svc-3", LastUpdated: updated},
		{ID: "ip-4", Address: "192.168.1.20", Subnet: "192.168.1.0/24", Gateway: "192.168.1.1", Status: inventory.IPAvailable, LastUpdated: updated},
		{ID: "ip-5", Address: "10.0.0.10", Subnet: "10.0.0.0/24", Gateway: "10.0.0.1", Status: inventory.IPAssigned, DeviceID: "dev-1", ServiceID: "svc-1", LastUpdated: updated},
	}

	f.Inventory.Services = []*inventory.Service{
		{
			ID: "svc-1", Name: "Web Service", Description: "Primary web service for customer-facing applications",
			DeviceIDs: []string{"dev-1", "dev-5"}, IPIDs: []string{"ip-1", "ip-5"},
			Status: inventory.ServiceActive, Owner: "Web Team", Department: "IT", Criticality: inventory.CriticalityHigh,
		},
		{
			ID: "svc-2", Name: "Database Service", Description: "Primary database service",
			DeviceIDs: []string{"dev-2"}, IPIDs: []string{"ip-2"},
			Status: inventory.ServiceActive, Owner: "Database Team", Department: "IT", Criticality: inventory.CriticalityCritical,
		},
		{
			ID: "svc-3", Name: "Application Service", Description: "Internal application service",
			DeviceIDs: []string{"dev-3"}, IPIDs: []string{"ip-3"},
			Status: inventory.ServiceActive, Owner: "App Team", Department: "IT", Criticality: inventory.CriticalityMedium,
		},
	}

	f.Inventory.Devices = []*inventory.Device{
		device("dev-1", "Web Server 1", "Dell R740", inventory.DeviceActive, "svc-1", "Web Service", "2023-01-15", "Primary web server", 450),
		device("dev-2", "Database Server", "HP DL380", inventory.DeviceActive, "svc-2", "Database Service", "2023-01-20", "Primary database server", 550),
		device("dev-3", "Application Server", "Dell R640", inventory.DeviceActive, "svc-3", "Application Service", "2023-02-01", "Internal application server", 350),
		device("dev-4", "Backup Server", "Dell R640", inventory.DeviceInactive, "", "", "2023-03-01", "Backup server - not yet configured", 350),
		device("dev-5", "Web Server 2", "Dell R740", inventory.DeviceMaintenance, "svc-1", "Web Service", "2023-02-15", "Secondary web server - under maintenance", 450),
	}

	mount := map[string]domainRack.Placement{
		"rack-1": {DeviceID: "dev-1", DeviceName: "Web Server 1", DeviceSize: 2, ServiceID: "svc-1", ServiceName: "Web Service", StartPosition: 5},
		"rack-7": {DeviceID: "dev-2", DeviceName: "Database Server", DeviceSize: 2, ServiceID: "svc-2", ServiceName: "Database Service", StartPosition: 8},
		"rack-8": {DeviceID: "dev-3", DeviceName: "Application Server", DeviceSize: 1, ServiceID: "svc-3", ServiceName: "Application Service", StartPosition: 3},
	}
	for _, r := range f.Racks {
		if p, ok := mount[r.ID]; ok {
			if err := r.Install(p); err != nil {
				panic(err)
			}
		}
	}

	return f
}

func device(id, name, model string, status inventory.DeviceStatus, serviceID, serviceName, installed, notes string, watts int) *inventory.Device {
	return &inventory.Device{
		ID:                    id,
		Name:                  name,
		Model:                 model,
		Status:                status,
		ServiceID:             serviceID,
		ServiceName:           serviceName,
		InstallationDate:      day(installed),
		LastUpdated:           day("2023-05-15"),
		Notes:                 notes,
		PowerConsumptionWatts: &watts,
	}
}

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}
