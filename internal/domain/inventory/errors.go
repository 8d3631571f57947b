package inventory

import "errors"

var (
	ErrDeviceNotFound     = errors.New("device not found")
	ErrIPNotFound         = errors.New("ip address not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrSubnetNotFound     = errors.New("subnet not found")
	ErrDataCenterNotFound = errors.New("data center not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidIPLinks     = errors.New("ip status does not match its links")
	ErrInvalidAddress     = errors.New("invalid ip address")
	ErrAlreadyExists      = errors.New("entity already exists")
)
