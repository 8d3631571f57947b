package inventory

import (
	"fmt"

	domainInventory "datacenter-inventory/internal/domain/inventory"
	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"
)

func init() {
	if err := utils.RegisterValidation("device_status", func(v string) bool {
		return domainInventory.DeviceStatus(v).Valid()
	}); err != nil {
		panic(err)
	}
	if err := utils.RegisterValidation("ip_status", func(v string) bool {
		return domainInventory.IPStatus(v).Valid()
	}); err != nil {
		panic(err)
	}
}

var deviceTransitions = map[domainInventory.DeviceStatus][]domainInventory.DeviceStatus{
	domainInventory.DeviceActive:         {domainInventory.DeviceInactive, domainInventory.DeviceMaintenance, domainInventory.DeviceDecommissioned},
	domainInventory.DeviceInactive:       {domainInventory.DeviceActive, domainInventory.DeviceMaintenance, domainInventory.DeviceDecommissioned},
	domainInventory.DeviceMaintenance:    {domainInventory.DeviceActive, domainInventory.DeviceInactive, domainInventory.DeviceDecommissioned},
	domainInventory.DeviceDecommissioned: {},
}

// ValidateDeviceStatus validates device status transitions
func ValidateDeviceStatus(currentStatus, newStatus domainInventory.DeviceStatus) error {
	allowedStatus, exists := deviceTransitions[currentStatus]
	if !exists {
		return fmt.Errorf("%w: current device status %q", domainInventory.ErrInvalidStatus, currentStatus)
	}

	for _, allowed := range allowedStatus {
		if newStatus == allowed {
			return nil
		}
	}

	return appErrors.NewAppError(
		appErrors.CodeInvalidTransition,
		fmt.Sprintf("Cannot transition from %s to %s", currentStatus, newStatus),
		appErrors.ErrInvalidStatusTransition).
		WithDetail("from", string(currentStatus)).
		WithDetail("to", string(newStatus))
}

// placedDeviceError rejects decommissioning a device that is still mounted
func placedDeviceError(deviceID, rackID string) error {
	return appErrors.NewAppError(
		appErrors.CodeInvalidTransition,
		fmt.Sprintf("Device %s is installed in rack %s and must be uninstalled first", deviceID, rackID),
		appErrors.ErrInvalidStatusTransition).
		WithDetail("placed_in", rackID)
}

// ApplyIPStatus returns ip with its status and links set for req.
// Available clears both links; Reserved keeps only a service link.
func ApplyIPStatus(ip domainInventory.IPAddress, req *UpdateIPStatusRequest) domainInventory.IPAddress {
	ip.Status = domainInventory.IPStatus(req.Status)
	if req.DeviceID != "" {
		ip.DeviceID = req.DeviceID
	}
	if req.ServiceID != "" {
		ip.ServiceID = req.ServiceID
	}

	switch ip.Status {
	case domainInventory.IPAvailable:
		ip.DeviceID = ""
		ip.ServiceID = ""
	case domainInventory.IPReserved:
		ip.DeviceID = ""
	}
	return ip
}
