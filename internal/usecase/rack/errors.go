package rack

import (
	"context"
	"errors"

	"datacenter-inventory/internal/domain/inventory"
	domainRack "datacenter-inventory/internal/domain/rack"
	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"
)

// ToAppError converts occupancy and repository errors into API errors.
// Conflicting positions and device ids travel in Details.
func ToAppError(err error) *appErrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := appErrors.AsAppError(err); ok {
		return appErr
	}

	appErr := classify(err)

	var moveErr *domainRack.MoveError
	if errors.As(err, &moveErr) {
		appErr.WithDetail("phase", moveErr.Phase).WithDetail("rack_id", moveErr.RackID)
	}
	return appErr
}

func classify(err error) *appErrors.AppError {
	var (
		sizeErr     *domainRack.SizeError
		boundsErr   *domainRack.BoundsError
		conflictErr *domainRack.SlotConflictError
		deviceErr   *domainRack.DeviceError
	)

	switch {
	case errors.As(err, &sizeErr):
		return appErrors.NewAppError(appErrors.CodeInvalidSize, "Device size must be at least 1", err).
			WithDetail("size", sizeErr.Size)

	case errors.As(err, &boundsErr):
		return appErrors.NewAppError(appErrors.CodeOutOfBounds, "Placement exceeds rack bounds", err).
			WithDetail("start_position", boundsErr.Start).
			WithDetail("end_position", boundsErr.End).
			WithDetail("total_units", boundsErr.TotalUnits)

	case errors.As(err, &conflictErr):
		return appErrors.NewAppError(appErrors.CodeSlotConflict, "Unit is already occupied", err).
			WithDetail("position", conflictErr.Position).
			WithDetail("occupied_by", conflictErr.DeviceID)

	case errors.Is(err, domainRack.ErrDeviceAlreadyPlaced):
		appErr := appErrors.NewAppError(appErrors.CodeDeviceAlreadyPlaced, "Device is already installed", err)
		if errors.As(err, &deviceErr) {
			appErr.WithDetail("placed_in", deviceErr.RackID)
		}
		return appErr

	case errors.Is(err, domainRack.ErrDeviceNotFound), errors.Is(err, inventory.ErrDeviceNotFound):
		return appErrors.NewAppError(appErrors.CodeDeviceNotFound, "Device not found", err)

	case errors.Is(err, domainRack.ErrRackNotFound):
		return appErrors.NewAppError(appErrors.CodeRackNotFound, "Rack not found", err)

	case errors.Is(err, domainRack.ErrRackAlreadyExists):
		return appErrors.NewAppError(appErrors.CodeRackAlreadyExists, "Rack already exists", err)

	case errors.Is(err, domainRack.ErrVersionConflict):
		return appErrors.NewAppError(appErrors.CodeVersionConflict, "Rack was modified concurrently", err)

	case errors.Is(err, domainRack.ErrUnexpectedVersionKey):
		return appErrors.NewAppError(appErrors.CodeValidation, "Expected version given for a rack that is not part of the move", err).
			WithDetail("field", "expected_versions")

	case errors.Is(err, domainRack.ErrMissingDeviceID):
		return appErrors.NewAppError(appErrors.CodeValidation, "Device id is required", err)

	case errors.Is(err, inventory.ErrDataCenterNotFound), errors.Is(err, inventory.ErrRoomNotFound):
		return appErrors.NewAppError(appErrors.CodeNotFound, "Location not found", err)

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
