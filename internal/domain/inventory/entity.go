package inventory

import (
	"fmt"
	"net/netip"
	"time"
)

// Device represents an inventory device. Rack placement is not a device fact;
// it is owned by the rack occupancy model.
type Device struct {
	ID                    string
	Name                  string
	Model                 string
	Status                DeviceStatus
	ServiceID             string
	ServiceName           string
	InstallationDate      *time.Time
	LastUpdated           *time.Time
	Notes                 string
	PowerConsumptionWatts *int
}

// IPAddress represents one address and its links to a device and/or service
type IPAddress struct {
	ID          string
	Address     string
	Subnet      string
	Gateway     string
	Status      IPStatus
	DeviceID    string
	ServiceID   string
	LastUpdated *time.Time
}

// Validate checks the address format and that the status agrees with the links:
// Assigned needs a device or service, Available needs neither.
func (ip *IPAddress) Validate() error {
	if !ip.Status.Valid() {
		return fmt.Errorf("%w: ip status %q", ErrInvalidStatus, ip.Status)
	}
	if _, err := netip.ParseAddr(ip.Address); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, ip.Address)
	}
	if ip.Subnet != "" && !Contains(ip.Subnet, ip.Address) {
		return fmt.Errorf("%w: %s is outside %s", ErrInvalidAddress, ip.Address, ip.Subnet)
	}

	linked := ip.DeviceID != "" || ip.ServiceID != ""
	switch ip.Status {
	case IPAssigned:
		if !linked {
			return fmt.Errorf("%w: assigned address %s has no device or service", ErrInvalidIPLinks, ip.Address)
		}
	case IPAvailable:
		if linked {
			return fmt.Errorf("%w: available address %s is still linked", ErrInvalidIPLinks, ip.Address)
		}
	}
	return nil
}

// Subnet represents a CIDR block administered as one pool
type Subnet struct {
	ID          string
	CIDR        string
	Description string
}

// SubnetUsage holds counters derived from the IP collection
type SubnetUsage struct {
	TotalIPs      int
	UsedIPs       int
	AvailableIPs  int
	ReservedIPs   int
	DeprecatedIPs int
}

// Service is a logical grouping of devices and IPs for one workload
type Service struct {
	ID          string
	Name        string
	Description string
	DeviceIDs   []string
	IPIDs       []string
	Status      ServiceStatus
	Owner       string
	Department  string
	Criticality Criticality
}

// DataCenter groups rooms, each holding racks
type DataCenter struct {
	ID    string
	Name  string
	Rooms []Room
}

// Room is a hall inside a data center
type Room struct {
	ID      string
	Name    string
	RackIDs []string
}
