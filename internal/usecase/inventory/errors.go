package inventory

import (
	"context"
	"errors"

	domainInventory "datacenter-inventory/internal/domain/inventory"
	domainRack "datacenter-inventory/internal/domain/rack"
	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"
)

// ToAppError converts inventory errors into API errors
func ToAppError(err error) *appErrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := appErrors.AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, domainInventory.ErrDeviceNotFound):
		return appErrors.NewAppError(appErrors.CodeDeviceNotFound, "Device not found", err)
	case errors.Is(err, domainInventory.ErrIPNotFound):
		return appErrors.NewAppError(appErrors.CodeNotFound, "IP address not found", err)
	case errors.Is(err, domainInventory.ErrServiceNotFound):
		return appErrors.NewAppError(appErrors.CodeNotFound, "Service not found", err)
	case errors.Is(err, domainInventory.ErrSubnetNotFound):
		return appErrors.NewAppError(appErrors.CodeNotFound, "Subnet not found", err)
	case errors.Is(err, domainInventory.ErrDataCenterNotFound), errors.Is(err, domainInventory.ErrRoomNotFound):
		return appErrors.NewAppError(appErrors.CodeNotFound, "Location not found", err)
	case errors.Is(err, domainRack.ErrRackNotFound):
		return appErrors.NewAppError(appErrors.CodeRackNotFound, "Rack not found", err)
	case errors.Is(err, domainInventory.ErrInvalidStatus),
		errors.Is(err, domainInventory.ErrInvalidIPLinks),
		errors.Is(err, domainInventory.ErrInvalidAddress):
		return appErrors.NewAppError(appErrors.CodeValidation, err.Error(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return appErrors.NewAppError(appErrors.CodeInternal, "Request cancelled", err)
	default:
		return appErrors.NewAppError(appErrors.CodeInternal, "Internal error", err)
	}
}

func validationError(err error) *appErrors.AppError {
	appErr := appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	appErr.Details = utils.ValidationDetails(err)
	return appErr
}
