package inventory

import "context"

// Repository defines read and status-update operations over the inventory
type Repository interface {
	GetDevice(ctx context.Context, deviceID string) (*Device, error)
	ListDevices(ctx context.Context) ([]*Device, error)
	UpdateDevice(ctx context.Context, device *Device) error

	GetIP(ctx context.Context, ipID string) (*IPAddress, error)
	ListIPs(ctx context.Context) ([]*IPAddress, error)
	UpdateIP(ctx context.Context, ip *IPAddress) error

	GetService(ctx context.Context, serviceID string) (*Service, error)
	ListServices(ctx context.Context) ([]*Service, error)

	GetSubnet(ctx context.Context, subnetID string) (*Subnet, error)
	ListSubnets(ctx context.Context) ([]*Subnet, error)

	GetDataCenter(ctx context.Context, dataCenterID string) (*DataCenter, error)
	ListDataCenters(ctx context.Context) ([]*DataCenter, error)
	AddRackToRoom(ctx context.Context, dataCenterID, roomID, rackID string) error
}

// Dataset is a complete inventory snapshot used to seed a repository
type Dataset struct {
	DataCenters []*DataCenter
	Devices     []*Device
	IPs         []*IPAddress
	Subnets     []*Subnet
	Services    []*Service
}

// IPsForDevice returns the addresses linked to deviceID, in input order
func IPsForDevice(ips []*IPAddress, deviceID string) []*IPAddress {
	var out []*IPAddress
	for _, ip := range ips {
		if ip.DeviceID == deviceID {
			out = append(out, ip)
		}
	}
	return out
}

// DisplayIP picks the address shown next to a device: the first assigned
// address linked to it, or "" when there is none.
func DisplayIP(ips []*IPAddress, deviceID string) string {
	for _, ip := range IPsForDevice(ips, deviceID) {
		if ip.Status == IPAssigned {
			return ip.Address
		}
	}
	return ""
}
