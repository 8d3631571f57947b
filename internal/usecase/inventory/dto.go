package inventory

import (
	"time"

	domainInventory "datacenter-inventory/internal/domain/inventory"
	domainRack "datacenter-inventory/internal/domain/rack"
)

type DeviceFilterRequest struct {
	Status    string `form:"status" validate:"omitempty,device_status"`
	ServiceID string `form:"service_id" validate:"omitempty,max=64"`
	Placed    *bool  `form:"placed"`
	Search    string `form:"search" validate:"omitempty,max=100"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type UpdateDeviceStatusRequest struct {
	Status string `json:"status" validate:"required,device_status"`
	Notes  string `json:"notes" validate:"omitempty,max=500"`
	Actor  string `json:"-"`
}

type IPFilterRequest struct {
	Status string `form:"status" validate:"omitempty,ip_status"`
	Subnet string `form:"subnet" validate:"omitempty,cidr"`
	Search string `form:"search" validate:"omitempty,max=100"`
}

type UpdateIPStatusRequest struct {
	Status    string `json:"status" validate:"required,ip_status"`
	DeviceID  string `json:"device_id" validate:"omitempty,max=64"`
	ServiceID string `json:"service_id" validate:"omitempty,max=64"`
	Actor     string `json:"-"`
}

// SearchRequest mirrors the search page filters. IPRange accepts a CIDR or
// one of the shorthand network addresses 10.0.0.0 and 192.168.0.0.
type SearchRequest struct {
	Query      string `form:"q" validate:"omitempty,max=100"`
	Status     string `form:"status" validate:"omitempty,max=32"`
	Model      string `form:"model" validate:"omitempty,max=64"`
	DataCenter string `form:"datacenter" validate:"omitempty,max=64"`
	IPRange    string `form:"ip_range" validate:"omitempty,max=43"`
}

type PlacementInfo struct {
	RackID         string `json:"rack_id"`
	RackName       string `json:"rack_name"`
	DataCenterID   string `json:"data_center_id"`
	DataCenterName string `json:"data_center_name"`
	RoomID         string `json:"room_id"`
	RoomName       string `json:"room_name"`
	StartPosition  int    `json:"start_position"`
	EndPosition    int    `json:"end_position"`
	DeviceSize     int    `json:"device_size"`
}

type DeviceResponse struct {
	ID                    string                       `json:"id"`
	Name                  string                       `json:"name"`
	Model                 string                       `json:"model"`
	Status                domainInventory.DeviceStatus `json:"status"`
	ServiceID             string                       `json:"service_id,omitempty"`
	ServiceName           string                       `json:"service_name,omitempty"`
	InstallationDate      *time.Time                   `json:"installation_date"`
	LastUpdated           *time.Time                   `json:"last_updated"`
	Notes                 string                       `json:"notes,omitempty"`
	PowerConsumptionWatts *int                         `json:"power_consumption_watts,omitempty"`
	IPAddress             string                       `json:"ip_address,omitempty"`
	Placement             *PlacementInfo               `json:"placement,omitempty"`
}

type DeviceDetailResponse struct {
	DeviceResponse
	IPs []IPResponse `json:"ips"`
}

type DeviceListResponse struct {
	Devices    []DeviceResponse `json:"devices"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

type IPResponse struct {
	ID          string                   `json:"id"`
	Address     string                   `json:"address"`
	Subnet      string                   `json:"subnet"`
	Gateway     string                   `json:"gateway,omitempty"`
	Status      domainInventory.IPStatus `json:"status"`
	DeviceID    string                   `json:"device_id,omitempty"`
	DeviceName  string                   `json:"device_name,omitempty"`
	ServiceID   string                   `json:"service_id,omitempty"`
	ServiceName string                   `json:"service_name,omitempty"`
	LastUpdated *time.Time               `json:"last_updated"`
}

type ServiceResponse struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	Description string                        `json:"description"`
	DeviceIDs   []string                      `json:"device_ids"`
	IPIDs       []string                      `json:"ip_ids"`
	Status      domainInventory.ServiceStatus `json:"status"`
	Owner       string                        `json:"owner"`
	Department  string                        `json:"department"`
	Criticality domainInventory.Criticality   `json:"criticality"`
}

type ServiceDetailResponse struct {
	ServiceResponse
	Devices     []DeviceResponse `json:"devices"`
	IPs         []IPResponse     `json:"ips"`
	PlacedUnits int              `json:"placed_units"`
}

type SubnetResponse struct {
	ID            string `json:"id"`
	CIDR          string `json:"cidr"`
	Description   string `json:"description"`
	TotalIPs      int    `json:"total_ips"`
	UsedIPs       int    `json:"used_ips"`
	AvailableIPs  int    `json:"available_ips"`
	ReservedIPs   int    `json:"reserved_ips"`
	DeprecatedIPs int    `json:"deprecated_ips"`
}

type SearchResponse struct {
	Devices  []DeviceResponse  `json:"devices"`
	Services []ServiceResponse `json:"services"`
	IPs      []IPResponse      `json:"ips"`
	Total    int               `json:"total"`
}

type DataCenterResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Rooms []RoomResponse `json:"rooms"`
}

type RoomResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	RackIDs []string `json:"rack_ids"`
}

// UsageCounter is a used/total pair as shown on the dashboard cards
type UsageCounter struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
	Percent   int `json:"percent"`
}

type RoomUsage struct {
	DataCenterID   string                 `json:"data_center_id"`
	DataCenterName string                 `json:"data_center_name"`
	RoomID         string                 `json:"room_id"`
	RoomName       string                 `json:"room_name"`
	Racks          int                    `json:"racks"`
	Units          UsageCounter           `json:"units"`
	Status         domainRack.UsageStatus `json:"status"`
}

type DashboardSummary struct {
	IPAddresses UsageCounter `json:"ip_addresses"`
	Devices     UsageCounter `json:"devices"`
	RackUnits   UsageCounter `json:"rack_units"`
	Racks       int          `json:"racks"`
	Rooms       []RoomUsage  `json:"rooms"`
}

type UserSummary struct {
	Services      int            `json:"services"`
	Devices       int            `json:"devices"`
	ServiceStatus map[string]int `json:"service_status"`
	DeviceStatus  map[string]int `json:"device_status"`
	Criticality   map[string]int `json:"criticality"`
}

func ToDeviceResponse(d *domainInventory.Device) DeviceResponse {
	return DeviceResponse{
		ID:                    d.ID,
		Name:                  d.Name,
		Model:                 d.Model,
		Status:                d.Status,
		ServiceID:             d.ServiceID,
		ServiceName:           d.ServiceName,
		InstallationDate:      d.InstallationDate,
		LastUpdated:           d.LastUpdated,
		Notes:                 d.Notes,
		PowerConsumptionWatts: d.PowerConsumptionWatts,
	}
}

func ToServiceResponse(s *domainInventory.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		DeviceIDs:   nonNil(s.DeviceIDs),
		IPIDs:       nonNil(s.IPIDs),
		Status:      s.Status,
		Owner:       s.Owner,
		Department:  s.Department,
		Criticality: s.Criticality,
	}
}

func ToDataCenterResponse(dc *domainInventory.DataCenter) DataCenterResponse {
	resp := DataCenterResponse{ID: dc.ID, Name: dc.Name, Rooms: make([]RoomResponse, len(dc.Rooms))}
	for i, room := range dc.Rooms {
		resp.Rooms[i] = RoomResponse{ID: room.ID, Name: room.Name, RackIDs: nonNil(room.RackIDs)}
	}
	return resp
}

func toPlacementInfo(r *domainRack.Rack, p domainRack.Placement) *PlacementInfo {
	return &PlacementInfo{
		RackID:         r.ID,
		RackName:       r.Name,
		DataCenterID:   r.Location.DataCenterID,
		DataCenterName: r.Location.DataCenterName,
		RoomID:         r.Location.RoomID,
		RoomName:       r.Location.RoomName,
		StartPosition:  p.StartPosition,
		EndPosition:    p.EndPosition(),
		DeviceSize:     p.DeviceSize,
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
