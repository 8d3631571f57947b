package rack

import (
	domainRack "datacenter-inventory/internal/domain/rack"
)

type RackFilterRequest struct {
	DataCenterID string `form:"datacenter" validate:"omitempty,max=64"`
	RoomID       string `form:"room" validate:"omitempty,max=64"`
}

// InstallDeviceRequest mounts an inventory device. Position and size are
// checked by the occupancy model, not by tags, so that range errors keep
// their own codes.
type InstallDeviceRequest struct {
	DeviceID        string  `json:"device_id" validate:"required,max=64"`
	StartPosition   int     `json:"start_position"`
	DeviceSize      int     `json:"device_size"`
	ExpectedVersion *uint64 `json:"expected_version"`
	Actor           string  `json:"-"`
}

type UninstallDeviceRequest struct {
	ExpectedVersion *uint64 `json:"expected_version" form:"expected_version"`
	Actor           string  `json:"-"`
}

type MoveDeviceRequest struct {
	DeviceID         string            `json:"device_id" validate:"required,max=64"`
	SourceRackID     string            `json:"source_rack_id" validate:"required,max=64"`
	TargetRackID     string            `json:"target_rack_id" validate:"required,max=64"`
	NewStartPosition int               `json:"new_start_position"`
	ExpectedVersions map[string]uint64 `json:"expected_versions"`
	Actor            string            `json:"-"`
}

type CreateRackRequest struct {
	ID           string `json:"id" validate:"omitempty,max=64"`
	Name         string `json:"name" validate:"required,min=1,max=100"`
	DataCenterID string `json:"data_center_id" validate:"required,max=64"`
	RoomID       string `json:"room_id" validate:"required,max=64"`
	TotalUnits   int    `json:"total_units" validate:"max=100"`
	Actor        string `json:"-"`
}

type RackSummary struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	DataCenterID   string                 `json:"data_center_id"`
	DataCenterName string                 `json:"data_center_name"`
	RoomID         string                 `json:"room_id"`
	RoomName       string                 `json:"room_name"`
	TotalUnits     int                    `json:"total_units"`
	UsedUnits      int                    `json:"used_units"`
	AvailableUnits int                    `json:"available_units"`
	UsagePercent   int                    `json:"usage_percent"`
	Status         domainRack.UsageStatus `json:"status"`
	Version        uint64                 `json:"version"`
}

type UnitResponse struct {
	Position    int    `json:"position"`
	Occupied    bool   `json:"occupied"`
	DeviceID    string `json:"device_id,omitempty"`
	DeviceName  string `json:"device_name,omitempty"`
	DeviceSize  int    `json:"device_size,omitempty"`
	ServiceID   string `json:"service_id,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
	IPAddress   string `json:"ip_address,omitempty"`
}

type PlacementResponse struct {
	RackID        string `json:"rack_id"`
	RackVersion   uint64 `json:"rack_version"`
	DeviceID      string `json:"device_id"`
	DeviceName    string `json:"device_name"`
	DeviceSize    int    `json:"device_size"`
	ServiceID     string `json:"service_id,omitempty"`
	ServiceName   string `json:"service_name,omitempty"`
	StartPosition int    `json:"start_position"`
	EndPosition   int    `json:"end_position"`
	IPAddress     string `json:"ip_address,omitempty"`
}

type RackDetailResponse struct {
	RackSummary
	Units      []UnitResponse      `json:"units"`
	Placements []PlacementResponse `json:"placements"`
}

type AvailabilityResponse struct {
	RackID    string `json:"rack_id"`
	Size      int    `json:"size"`
	Positions []int  `json:"positions"`
}

type ShareResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Units         int    `json:"units"`
	Percent       int    `json:"percent"`
	StartPosition int    `json:"start_position"`
	IPAddress     string `json:"ip_address,omitempty"`
}

type StatisticsResponse struct {
	RackID         string                 `json:"rack_id"`
	RackName       string                 `json:"rack_name"`
	TotalUnits     int                    `json:"total_units"`
	UsedUnits      int                    `json:"used_units"`
	AvailableUnits int                    `json:"available_units"`
	UsagePercent   int                    `json:"usage_percent"`
	DeviceCount    int                    `json:"device_count"`
	ServiceCount   int                    `json:"service_count"`
	Devices        []ShareResponse        `json:"devices"`
	Services       []ShareResponse        `json:"services"`
	Status         domainRack.UsageStatus `json:"status"`
}

type MoveResponse struct {
	Placement  PlacementResponse `json:"placement"`
	SourceRack RackSummary       `json:"source_rack"`
	TargetRack RackSummary       `json:"target_rack"`
}

func ToRackSummary(r *domainRack.Rack) RackSummary {
	stats := r.Statistics()
	return RackSummary{
		ID:             r.ID,
		Name:           r.Name,
		DataCenterID:   r.Location.DataCenterID,
		DataCenterName: r.Location.DataCenterName,
		RoomID:         r.Location.RoomID,
		RoomName:       r.Location.RoomName,
		TotalUnits:     stats.TotalUnits,
		UsedUnits:      stats.UsedUnits,
		AvailableUnits: stats.AvailableUnits,
		UsagePercent:   stats.UsagePercent,
		Status:         stats.Status,
		Version:        r.Version,
	}
}

func ToPlacementResponse(r *domainRack.Rack, p domainRack.Placement, ip string) PlacementResponse {
	return PlacementResponse{
		RackID:        r.ID,
		RackVersion:   r.Version,
		DeviceID:      p.DeviceID,
		DeviceName:    p.DeviceName,
		DeviceSize:    p.DeviceSize,
		ServiceID:     p.ServiceID,
		ServiceName:   p.ServiceName,
		StartPosition: p.StartPosition,
		EndPosition:   p.EndPosition(),
		IPAddress:     ip,
	}
}

func toShareResponses(shares []domainRack.UnitShare, ipFor func(id string) string) []ShareResponse {
	out := make([]ShareResponse, len(shares))
	for i, s := range shares {
		out[i] = ShareResponse{
			ID:            s.ID,
			Name:          s.Name,
			Units:         s.Units,
			Percent:       s.Percent,
			StartPosition: s.StartPosition,
		}
		if ipFor != nil {
			out[i].IPAddress = ipFor(s.ID)
		}
	}
	return out
}
