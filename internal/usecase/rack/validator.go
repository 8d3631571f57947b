package rack

import (
	"fmt"

	"datacenter-inventory/internal/domain/inventory"
	appErrors "datacenter-inventory/pkg/errors"
)

// ValidateInstallable rejects devices that may not be mounted
func ValidateInstallable(device *inventory.Device) error {
	if device.Status == inventory.DeviceDecommissioned {
		return appErrors.NewAppError(
			appErrors.CodeDeviceDecommissioned,
			fmt.Sprintf("Device %s is decommissioned and cannot be installed", device.ID),
			nil).WithDetail("device_id", device.ID)
	}
	return nil
}

// ValidateMoveRequest checks that the expected versions only name racks
// taking part in the move
func ValidateMoveRequest(req *MoveDeviceRequest) error {
	for rackID := range req.ExpectedVersions {
		if rackID != req.SourceRackID && rackID != req.TargetRackID {
			return appErrors.NewAppError(
				appErrors.CodeValidation,
				fmt.Sprintf("Expected version given for rack %s which is not part of the move", rackID),
				nil).WithDetail("expected_versions", rackID)
		}
	}
	return nil
}
