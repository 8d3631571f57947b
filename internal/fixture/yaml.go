package fixture

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"datacenter-inventory/internal/domain/inventory"
	domainRack "datacenter-inventory/internal/domain/rack"

	"gopkg.in/yaml.v3"
)

type fileDocument struct {
	DataCenters []fileDataCenter `yaml:"datacenters"`
	Subnets     []fileSubnet     `yaml:"subnets"`
	IPs         []fileIP         `yaml:"ips"`
	Services    []fileService    `yaml:"services"`
	Devices     []fileDevice     `yaml:"devices"`
}

type fileDataCenter struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Rooms []fileRoom `yaml:"rooms"`
}

type fileRoom struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Racks []fileRack `yaml:"racks"`
}

type fileRack struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	TotalUnits int             `yaml:"total_units"`
	Placements []filePlacement `yaml:"placements"`
}

type filePlacement struct {
	DeviceID      string `yaml:"device_id"`
	StartPosition int    `yaml:"start_position"`
	Size          int    `yaml:"size"`
}

type fileSubnet struct {
	ID          string `yaml:"id"`
	CIDR        string `yaml:"cidr"`
	Description string `yaml:"description"`
}

type fileIP struct {
	ID          string `yaml:"id"`
	Address     string `yaml:"address"`
	Subnet      string `yaml:"subnet"`
	Gateway     string `yaml:"gateway"`
	Status      string `yaml:"status"`
	DeviceID    string `yaml:"device_id"`
	ServiceID   string `yaml:"service_id"`
	LastUpdated string `yaml:"last_updated"`
}

type fileService struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Devices     []string `yaml:"devices"`
	IPs         []string `yaml:"ips"`
	Status      string   `yaml:"status"`
	Owner       string   `yaml:"owner"`
	Department  string   `yaml:"department"`
	Criticality string   `yaml:"criticality"`
}

type fileDevice struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Model            string `yaml:"model"`
	Status           string `yaml:"status"`
	ServiceID        string `yaml:"service_id"`
	InstallationDate string `yaml:"installation_date"`
	LastUpdated      string `yaml:"last_updated"`
	Notes            string `yaml:"notes"`
	PowerWatts       *int   `yaml:"power_watts"`
}

// LoadFile reads a fixture from a YAML file
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML fixture. Unknown keys are rejected, every rack must
// satisfy its occupancy invariants and every IP its status invariant.
func Parse(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc fileDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return doc.build()
}

func (doc *fileDocument) build() (*Fixture, error) {
	f := &Fixture{}

	services := make(map[string]*inventory.Service, len(doc.Services))
	for _, s := range doc.Services {
		status, err := inventory.ParseServiceStatus(s.Status)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", s.ID, err)
		}
		criticality, err := inventory.ParseCriticality(s.Criticality)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", s.ID, err)
		}
		svc := &inventory.Service{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			DeviceIDs:   s.Devices,
			IPIDs:       s.IPs,
			Status:      status,
			Owner:       s.Owner,
			Department:  s.Department,
			Criticality: criticality,
		}
		services[s.ID] = svc
		f.Inventory.Services = append(f.Inventory.Services, svc)
	}

	devices := make(map[string]*inventory.Device, len(doc.Devices))
	for _, d := range doc.Devices {
		status, err := inventory.ParseDeviceStatus(d.Status)
		if err != nil {
			return nil, fmt.Errorf("device %s: %w", d.ID, err)
		}
		installed, err := parseDate(d.InstallationDate)
		if err != nil {
			return nil, fmt.Errorf("device %s: %w", d.ID, err)
		}
		updated, err := parseDate(d.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("device %s: %w", d.ID, err)
		}
		device := &inventory.Device{
			ID:                    d.ID,
			Name:                  d.Name,
			Model:                 d.Model,
			Status:                status,
			ServiceID:             d.ServiceID,
			InstallationDate:      installed,
			LastUpdated:           updated,
			Notes:                 d.Notes,
			PowerConsumptionWatts: d.PowerWatts,
		}
		if d.ServiceID != "" {
			svc, ok := services[d.ServiceID]
			if !ok {
				return nil, fmt.Errorf("device %s: %w: %s", d.ID, inventory.ErrServiceNotFound, d.ServiceID)
			}
			device.ServiceName = svc.Name
		}
		devices[d.ID] = device
		f.Inventory.Devices = append(f.Inventory.Devices, device)
	}

	for _, s := range doc.Subnets {
		if _, err := inventory.SubnetCapacity(s.CIDR); err != nil {
			return nil, fmt.Errorf("subnet %s: %w", s.ID, err)
		}
		f.Inventory.Subnets = append(f.Inventory.Subnets, &inventory.Subnet{ID: s.ID, CIDR: s.CIDR, Description: s.Description})
	}

	for _, ip := range doc.IPs {
		status, err := inventory.ParseIPStatus(ip.Status)
		if err != nil {
			return nil, fmt.Errorf("ip %s: %w", ip.ID, err)
		}
		updated, err := parseDate(ip.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("ip %s: %w", ip.ID, err)
		}
		entity := &inventory.IPAddress{
			ID:          ip.ID,
			Address:     ip.Address,
			Subnet:      ip.Subnet,
			Gateway:     ip.Gateway,
			Status:      status,
			DeviceID:    ip.DeviceID,
			ServiceID:   ip.ServiceID,
			LastUpdated: updated,
		}
		if err := entity.Validate(); err != nil {
			return nil, fmt.Errorf("ip %s: %w", ip.ID, err)
		}
		f.Inventory.IPs = append(f.Inventory.IPs, entity)
	}

	for _, dc := range doc.DataCenters {
		entity := &inventory.DataCenter{ID: dc.ID, Name: dc.Name}
		for _, room := range dc.Rooms {
			r := inventory.Room{ID: room.ID, Name: room.Name}
			for _, fr := range room.Racks {
				rack, err := buildRack(fr, domainRack.Location{
					DataCenterID:   dc.ID,
					DataCenterName: dc.Name,
					RoomID:         room.ID,
					RoomName:       room.Name,
				}, devices)
				if err != nil {
					return nil, err
				}
				f.Racks = append(f.Racks, rack)
				r.RackIDs = append(r.RackIDs, rack.ID)
			}
			entity.Rooms = append(entity.Rooms, r)
		}
		f.Inventory.DataCenters = append(f.Inventory.DataCenters, entity)
	}

	return f, nil
}

func buildRack(fr fileRack, loc domainRack.Location, devices map[string]*inventory.Device) (*domainRack.Rack, error) {
	total := fr.TotalUnits
	if total == 0 {
		total = StandardRackUnits
	}
	rack, err := domainRack.NewRack(fr.ID, fr.Name, total, loc)
	if err != nil {
		return nil, fmt.Errorf("rack %s: %w", fr.ID, err)
	}

	for _, p := range fr.Placements {
		device, ok := devices[p.DeviceID]
		if !ok {
			return nil, fmt.Errorf("rack %s: %w", fr.ID, &domainRack.DeviceError{RackID: fr.ID, DeviceID: p.DeviceID, Err: domainRack.ErrDeviceNotFound})
		}
		err := rack.Install(domainRack.Placement{
			DeviceID:      device.ID,
			DeviceName:    device.Name,
			DeviceSize:    p.Size,
			ServiceID:     device.ServiceID,
			ServiceName:   device.ServiceName,
			StartPosition: p.StartPosition,
		})
		if err != nil {
			return nil, fmt.Errorf("rack %s: %w", fr.ID, err)
		}
	}

	if err := rack.Verify(); err != nil {
		return nil, err
	}
	return rack, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return &t, nil
}
