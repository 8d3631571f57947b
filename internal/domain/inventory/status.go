package inventory

import "fmt"

// DeviceStatus represents the lifecycle status of a device
type DeviceStatus string

const (
	DeviceActive         DeviceStatus = "Active"
	DeviceInactive       DeviceStatus = "Inactive"
	DeviceMaintenance    DeviceStatus = "Maintenance"
	DeviceDecommissioned DeviceStatus = "Decommissioned"
)

// IPStatus represents the lifecycle status of an IP address
type IPStatus string

const (
	IPAssigned   IPStatus = "Assigned"
	IPAvailable  IPStatus = "Available"
	IPReserved   IPStatus = "Reserved"
	IPDeprecated IPStatus = "Deprecated"
)

// ServiceStatus represents the operational status of a service
type ServiceStatus string

const (
	ServiceActive      ServiceStatus = "Active"
	ServiceInactive    ServiceStatus = "Inactive"
	ServiceMaintenance ServiceStatus = "Maintenance"
	ServicePlanned     ServiceStatus = "Planned"
)

// Criticality is the business-impact tier of a service
type Criticality string

const (
	CriticalityLow      Criticality = "Low"
	CriticalityMedium   Criticality = "Medium"
	CriticalityHigh     Criticality = "High"
	CriticalityCritical Criticality = "Critical"
)

var (
	deviceStatuses  = []DeviceStatus{DeviceActive, DeviceInactive, DeviceMaintenance, DeviceDecommissioned}
	ipStatuses      = []IPStatus{IPAssigned, IPAvailable, IPReserved, IPDeprecated}
	serviceStatuses = []ServiceStatus{ServiceActive, ServiceInactive, ServiceMaintenance, ServicePlanned}
	criticalities   = []Criticality{CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical}
)

func (s DeviceStatus) Valid() bool  { return contains(deviceStatuses, s) }
func (s IPStatus) Valid() bool      { return contains(ipStatuses, s) }
func (s ServiceStatus) Valid() bool { return contains(serviceStatuses, s) }
func (c Criticality) Valid() bool   { return contains(criticalities, c) }

// DeviceStatuses lists every device status in display order
func DeviceStatuses() []DeviceStatus { return append([]DeviceStatus(nil), deviceStatuses...) }

// IPStatuses lists every IP status in display order
func IPStatuses() []IPStatus { return append([]IPStatus(nil), ipStatuses...) }

// ServiceStatuses lists every service status in display order
func ServiceStatuses() []ServiceStatus { return append([]ServiceStatus(nil), serviceStatuses...) }

func ParseDeviceStatus(s string) (DeviceStatus, error) {
	if v := DeviceStatus(s); v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("%w: device status %q", ErrInvalidStatus, s)
}

func ParseIPStatus(s string) (IPStatus, error) {
	if v := IPStatus(s); v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("%w: ip status %q", ErrInvalidStatus, s)
}

func ParseServiceStatus(s string) (ServiceStatus, error) {
	if v := ServiceStatus(s); v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("%w: service status %q", ErrInvalidStatus, s)
}

func ParseCriticality(s string) (Criticality, error) {
	if v := Criticality(s); v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("%w: criticality %q", ErrInvalidStatus, s)
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
