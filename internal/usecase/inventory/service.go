package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	domainInventory "datacenter-inventory/internal/domain/inventory"
	domainRack "datacenter-inventory/internal/domain/rack"
	"datacenter-inventory/internal/events"
	"datacenter-inventory/internal/logger"
	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	anyFilter       = "any"
)

// ipRangeShorthands maps the network addresses offered as range filters to
// the block they stand for
var ipRangeShorthands = map[string]string{
	"10.0.0.0":    "10.0.0.0/8",
	"172.16.0.0":  "172.16.0.0/12",
	"192.168.0.0": "192.168.0.0/16",
}

// Service implements inventory queries and status changes
type Service struct {
	inventoryRepo domainInventory.Repository
	rackRepo      domainRack.Repository
	publisher     events.Publisher
	now           func() time.Time
}

// NewService creates a new inventory service. publisher may be nil.
func NewService(inventoryRepo domainInventory.Repository, rackRepo domainRack.Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		inventoryRepo: inventoryRepo,
		rackRepo:      rackRepo,
		publisher:     publisher,
		now:           time.Now,
	}
}

// snapshot is one consistent-enough read of everything a view needs
type snapshot struct {
	devices    []*domainInventory.Device
	ips        []*domainInventory.IPAddress
	services   []*domainInventory.Service
	racks      []*domainRack.Rack
	placements map[string]*PlacementInfo
	deviceByID map[string]*domainInventory.Device
	serviceBy  map[string]*domainInventory.Service
}

func (s *Service) load(ctx context.Context) (*snapshot, error) {
	devices, err := s.inventoryRepo.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	ips, err := s.inventoryRepo.ListIPs(ctx)
	if err != nil {
		return nil, err
	}
	services, err := s.inventoryRepo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	racks, err := s.rackRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		devices:    devices,
		ips:        ips,
		services:   services,
		racks:      racks,
		placements: make(map[string]*PlacementInfo),
		deviceByID: make(map[string]*domainInventory.Device, len(devices)),
		serviceBy:  make(map[string]*domainInventory.Service, len(services)),
	}
	for _, r := range racks {
		for _, p := range r.Placements() {
			snap.placements[p.DeviceID] = toPlacementInfo(r, p)
		}
	}
	for _, d := range devices {
		snap.deviceByID[d.ID] = d
	}
	for _, svc := range services {
		snap.serviceBy[svc.ID] = svc
	}
	return snap, nil
}

func (snap *snapshot) device(d *domainInventory.Device) DeviceResponse {
	resp := ToDeviceResponse(d)
	resp.IPAddress = domainInventory.DisplayIP(snap.ips, d.ID)
	resp.Placement = snap.placements[d.ID]
	return resp
}

func (snap *snapshot) ip(ip *domainInventory.IPAddress) IPResponse {
	resp := IPResponse{
		ID:          ip.ID,
		Address:     ip.Address,
		Subnet:      ip.Subnet,
		Gateway:     ip.Gateway,
		Status:      ip.Status,
		DeviceID:    ip.DeviceID,
		ServiceID:   ip.ServiceID,
		LastUpdated: ip.LastUpdated,
	}
	if d, ok := snap.deviceByID[ip.DeviceID]; ok {
		resp.DeviceName = d.Name
	}
	if svc, ok := snap.serviceBy[ip.ServiceID]; ok {
		resp.ServiceName = svc.Name
	}
	return resp
}

func (snap *snapshot) deviceAddresses(deviceID string) []string {
	var out []string
	for _, ip := range domainInventory.IPsForDevice(snap.ips, deviceID) {
		out = append(out, ip.Address)
	}
	return out
}

// ListDevices returns one page of devices matching the filter
func (s *Service) ListDevices(ctx context.Context, filter *DeviceFilterRequest) (*DeviceListResponse, error) {
	if filter == nil {
		filter = &DeviceFilterRequest{}
	}
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, validationError(err)
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}

	query := utils.SanitizeQuery(filter.Search)
	var matched []DeviceResponse
	for _, d := range snap.devices {
		if filter.Status != "" && string(d.Status) != filter.Status {
			continue
		}
		if filter.ServiceID != "" && d.ServiceID != filter.ServiceID {
			continue
		}
		if filter.Placed != nil && (snap.placements[d.ID] != nil) != *filter.Placed {
			continue
		}
		if query != "" && !matchAny(query, append([]string{d.Name, d.Model, d.ServiceName}, snap.deviceAddresses(d.ID)...)...) {
			continue
		}
		matched = append(matched, snap.device(d))
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	resp := &DeviceListResponse{
		Devices:    []DeviceResponse{},
		Total:      len(matched),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (len(matched) + pageSize - 1) / pageSize,
	}
	// Pages past the end are empty; checking before multiplying keeps huge
	// page numbers from overflowing the offset.
	if page <= resp.TotalPages {
		start := (page - 1) * pageSize
		end := min(start+pageSize, len(matched))
		resp.Devices = matched[start:end]
	}
	return resp, nil
}

// GetDevice returns a device with its placement and addresses
func (s *Service) GetDevice(ctx context.Context, deviceID string) (*DeviceDetailResponse, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}
	d, ok := snap.deviceByID[deviceID]
	if !ok {
		return nil, ToAppError(domainInventory.ErrDeviceNotFound)
	}

	detail := &DeviceDetailResponse{DeviceResponse: snap.device(d), IPs: []IPResponse{}}
	for _, ip := range domainInventory.IPsForDevice(snap.ips, d.ID) {
		detail.IPs = append(detail.IPs, snap.ip(ip))
	}
	return detail, nil
}

// UpdateDeviceStatus moves a device through its lifecycle. Repeating the
// current status is allowed and only refreshes the notes.
func (s *Service) UpdateDeviceStatus(ctx context.Context, deviceID string, req *UpdateDeviceStatusRequest) (*DeviceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	device, err := s.inventoryRepo.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, ToAppError(err)
	}
	newStatus := domainInventory.DeviceStatus(req.Status)
	oldStatus := device.Status

	if newStatus != oldStatus {
		if err := ValidateDeviceStatus(oldStatus, newStatus); err != nil {
			return nil, ToAppError(err)
		}
		if newStatus == domainInventory.DeviceDecommissioned {
			rackID, _, err := s.rackRepo.LocateDevice(ctx, deviceID)
			switch {
			case err == nil:
				return nil, placedDeviceError(deviceID, rackID)
			case !errors.Is(err, domainRack.ErrDeviceNotFound):
				return nil, ToAppError(err)
			}
		}
	}

	device.Status = newStatus
	if notes := utils.SanitizeText(req.Notes); notes != "" {
		device.Notes = notes
	}
	if err := s.inventoryRepo.UpdateDevice(ctx, device); err != nil {
		return nil, ToAppError(err)
	}

	logger.Info("Device status changed",
		zap.String("device_id", device.ID),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(newStatus)),
		zap.String("actor", req.Actor),
		logger.Event(string(events.DeviceStatusChanged)),
	)
	s.publish(ctx, events.Event{
		Type:     events.DeviceStatusChanged,
		DeviceID: device.ID,
		Status:   string(newStatus),
		Actor:    req.Actor,
	})

	resp := ToDeviceResponse(device)
	if ips, err := s.inventoryRepo.ListIPs(ctx); err == nil {
		resp.IPAddress = domainInventory.DisplayIP(ips, device.ID)
	}
	return &resp, nil
}

// ListIPs returns addresses matching the filter
func (s *Service) ListIPs(ctx context.Context, filter *IPFilterRequest) ([]IPResponse, error) {
	if filter == nil {
		filter = &IPFilterRequest{}
	}
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, validationError(err)
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}

	query := utils.SanitizeQuery(filter.Search)
	out := []IPResponse{}
	for _, ip := range snap.ips {
		if filter.Status != "" && string(ip.Status) != filter.Status {
			continue
		}
		if filter.Subnet != "" && ip.Subnet != filter.Subnet && !domainInventory.Contains(filter.Subnet, ip.Address) {
			continue
		}
		resp := snap.ip(ip)
		if query != "" && !matchAny(query, resp.Address, resp.Subnet, resp.DeviceName, resp.ServiceName) {
			continue
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *Service) GetIP(ctx context.Context, ipID string) (*IPResponse, error) {
	ip, err := s.inventoryRepo.GetIP(ctx, ipID)
	if err != nil {
		return nil, ToAppError(err)
	}
	snap, err := s.load(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}
	resp := snap.ip(ip)
	return &resp, nil
}

// UpdateIPStatus changes an address status. Links named in the request must
// exist; the stored record is checked against the status invariant.
func (s *Service) UpdateIPStatus(ctx context.Context, ipID string, req *UpdateIPStatusRequest) (*IPResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	ip, err := s.inventoryRepo.GetIP(ctx, ipID)
	if err != nil {
		return nil, ToAppError(err)
	}
	oldStatus := ip.Status
	updated := ApplyIPStatus(*ip, req)

	if updated.DeviceID != "" {
		if _, err := s.inventoryRepo.GetDevice(ctx, updated.DeviceID); err != nil {
			return nil, ToAppError(err)
		}
	}
	if updated.ServiceID != "" {
		if _, err := s.inventoryRepo.GetService(ctx, updated.ServiceID); err != nil {
			return nil, ToAppError(err)
		}
	}
	if err := s.inventoryRepo.UpdateIP(ctx, &updated); err != nil {
		return nil, ToAppError(err)
	}

	logger.Info("IP status changed",
		zap.String("ip_id", updated.ID),
		zap.String("address", updated.Address),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(updated.Status)),
		zap.String("actor", req.Actor),
		logger.Event(string(events.IPStatusChanged)),
	)
	s.publish(ctx, events.Event{
		Type:     events.IPStatusChanged,
		IPID:     updated.ID,
		DeviceID: updated.DeviceID,
		Status:   string(updated.Status),
		Actor:    req.Actor,
	})

	return s.GetIP(ctx, updated.ID)
}

func (s *Service) ListServices(ctx context.Context) ([]ServiceResponse, error) {
	services, err := s.inventoryRepo.ListServices(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}
	out := make([]ServiceResponse, len(services))
	for i, svc := range services {
		out[i] = ToServiceResponse(svc)
	}
	return out, nil
}

// GetService resolves the devices and addresses of a service and sums the
// rack units its devices occupy
func (s *Service) GetService(ctx context.Context, serviceID string) (*ServiceDetailResponse, error) {
	svc, err := s.inventoryRepo.GetService(ctx, serviceID)
	if err != nil {
		return nil, ToAppError(err)
	}
	snap, err := s.load(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}

	detail := &ServiceDetailResponse{
		ServiceResponse: ToServiceResponse(svc),
		Devices:         []DeviceResponse{},
		IPs:             []IPResponse{},
	}

	for _, d := range snap.serviceDevices(svc) {
		resp := snap.device(d)
		if resp.Placement != nil {
			detail.PlacedUnits += resp.Placement.DeviceSize
		}
		detail.Devices = append(detail.Devices, resp)
	}

	linked := make(map[string]bool)
	for _, id := range svc.IPIDs {
		linked[id] = true
	}
	for _, ip := range snap.ips {
		if linked[ip.ID] || ip.ServiceID == svc.ID {
			detail.IPs = append(detail.IPs, snap.ip(ip))
		}
	}
	return detail, nil
}

// ListSubnets returns every subnet with usage derived from the addresses
func (s *Service) ListSubnets(ctx context.Context) ([]SubnetResponse, error) {
	subnets, err := s.inventoryRepo.ListSubnets(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}
	ips, err := s.inventoryRepo.ListIPs(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}

	out := make([]SubnetResponse, 0, len(subnets))
	for _, sn := range subnets {
		usage, err := sn.Usage(ips)
		if err != nil {
			return nil, ToAppError(err)
		}
		out = append(out, SubnetResponse{
			ID:            sn.ID,
			CIDR:          sn.CIDR,
			Description:   sn.Description,
			TotalIPs:      usage.TotalIPs,
			UsedIPs:       usage.UsedIPs,
			AvailableIPs:  usage.AvailableIPs,
			ReservedIPs:   usage.ReservedIPs,
			DeprecatedIPs: usage.DeprecatedIPs,
		})
	}
	return out, nil
}

func (s *Service) ListDataCenters(ctx context.Context) ([]DataCenterResponse, error) {
	dcs, err := s.inventoryRepo.ListDataCenters(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}
	out := make([]DataCenterResponse, len(dcs))
	for i, dc := range dcs {
		out[i] = ToDataCenterResponse(dc)
	}
	return out, nil
}

// Search matches devices, services and addresses against a free-text query.
// Text matching is a case-insensitive substring test; the remaining filters
// narrow each collection where they apply.
func (s *Service) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil {
		req = &SearchRequest{}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}
	inRange, err := parseIPRange(req.IPRange)
	if err != nil {
		return nil, err
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}

	query := utils.SanitizeQuery(req.Query)
	status := filterValue(req.Status)
	model := strings.ToLower(filterValue(req.Model))
	location := filterValue(req.DataCenter)

	resp := &SearchResponse{Devices: []DeviceResponse{}, Services: []ServiceResponse{}, IPs: []IPResponse{}}

	for _, d := range snap.devices {
		addrs := snap.deviceAddresses(d.ID)
		if query != "" && !matchAny(query, append([]string{d.Name, d.Model, d.ServiceName}, addrs...)...) {
			continue
		}
		if status != "" && !strings.EqualFold(string(d.Status), status) {
			continue
		}
		if model != "" && !strings.Contains(strings.ToLower(d.Model), model) {
			continue
		}
		if location != "" && !snap.deviceIn(d.ID, location) {
			continue
		}
		if inRange != nil && !anyAddress(addrs, inRange) {
			continue
		}
		resp.Devices = append(resp.Devices, snap.device(d))
	}

	for _, svc := range snap.services {
		if query != "" && !matchAny(query, svc.Name, svc.Description, svc.Owner, svc.Department) {
			continue
		}
		if status != "" && !strings.EqualFold(string(svc.Status), status) {
			continue
		}
		if location != "" && !snap.serviceIn(svc, location) {
			continue
		}
		resp.Services = append(resp.Services, ToServiceResponse(svc))
	}

	for _, ip := range snap.ips {
		view := snap.ip(ip)
		if query != "" && !matchAny(query, view.Address, view.Subnet, view.DeviceName, view.ServiceName) {
			continue
		}
		if status != "" && !strings.EqualFold(string(ip.Status), status) {
			continue
		}
		if location != "" && (ip.DeviceID == "" || !snap.deviceIn(ip.DeviceID, location)) {
			continue
		}
		if inRange != nil && !inRange(ip.Address) {
			continue
		}
		resp.IPs = append(resp.IPs, view)
	}

	resp.Total = len(resp.Devices) + len(resp.Services) + len(resp.IPs)
	return resp, nil
}

// DashboardSummary aggregates address, device and rack usage for the admin view
func (s *Service) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}
	subnets, err := s.inventoryRepo.ListSubnets(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}
	dcs, err := s.inventoryRepo.ListDataCenters(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}

	summary := &DashboardSummary{Racks: len(snap.racks), Rooms: []RoomUsage{}}

	for _, sn := range subnets {
		usage, err := sn.Usage(snap.ips)
		if err != nil {
			return nil, ToAppError(err)
		}
		summary.IPAddresses.Total += usage.TotalIPs
		summary.IPAddresses.Used += usage.UsedIPs
		summary.IPAddresses.Available += usage.AvailableIPs
	}
	summary.IPAddresses.Percent = percent(summary.IPAddresses.Used, summary.IPAddresses.Total)

	summary.Devices.Total = len(snap.devices)
	for _, d := range snap.devices {
		if snap.placements[d.ID] != nil {
			summary.Devices.Used++
		}
	}
	summary.Devices.Available = summary.Devices.Total - summary.Devices.Used
	summary.Devices.Percent = percent(summary.Devices.Used, summary.Devices.Total)

	rooms := make(map[string]*RoomUsage)
	for _, dc := range dcs {
		for _, room := range dc.Rooms {
			summary.Rooms = append(summary.Rooms, RoomUsage{
				DataCenterID:   dc.ID,
				DataCenterName: dc.Name,
				RoomID:         room.ID,
				RoomName:       room.Name,
			})
		}
	}
	for i := range summary.Rooms {
		ru := &summary.Rooms[i]
		rooms[ru.DataCenterID+"/"+ru.RoomID] = ru
	}

	for _, r := range snap.racks {
		stats := r.Statistics()
		summary.RackUnits.Total += stats.TotalUnits
		summary.RackUnits.Used += stats.UsedUnits

		if ru, ok := rooms[r.Location.DataCenterID+"/"+r.Location.RoomID]; ok {
			ru.Racks++
			ru.Units.Total += stats.TotalUnits
			ru.Units.Used += stats.UsedUnits
		}
	}
	summary.RackUnits.Available = summary.RackUnits.Total - summary.RackUnits.Used
	summary.RackUnits.Percent = percent(summary.RackUnits.Used, summary.RackUnits.Total)

	for i := range summary.Rooms {
		u := &summary.Rooms[i].Units
		u.Available = u.Total - u.Used
		u.Percent = percent(u.Used, u.Total)
		summary.Rooms[i].Status = domainRack.ClassifyUsage(u.Percent)
	}
	return summary, nil
}

// UserSummary counts services and devices by status for the user view
func (s *Service) UserSummary(ctx context.Context) (*UserSummary, error) {
	services, err := s.inventoryRepo.ListServices(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}
	devices, err := s.inventoryRepo.ListDevices(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}

	summary := &UserSummary{
		Services:      len(services),
		Devices:       len(devices),
		ServiceStatus: make(map[string]int),
		DeviceStatus:  make(map[string]int),
		Criticality:   make(map[string]int),
	}
	for _, st := range domainInventory.ServiceStatuses() {
		summary.ServiceStatus[string(st)] = 0
	}
	for _, st := range domainInventory.DeviceStatuses() {
		summary.DeviceStatus[string(st)] = 0
	}
	for _, svc := range services {
		summary.ServiceStatus[string(svc.Status)]++
		if svc.Criticality != "" {
			summary.Criticality[string(svc.Criticality)]++
		}
	}
	for _, d := range devices {
		summary.DeviceStatus[string(d.Status)]++
	}
	return summary, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	event.OccurredAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish inventory event",
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func (snap *snapshot) deviceIn(deviceID, location string) bool {
	p := snap.placements[deviceID]
	if p == nil {
		return false
	}
	return strings.EqualFold(p.DataCenterID, location) || strings.EqualFold(p.DataCenterName, location)
}

// serviceDevices returns the devices the service lists together with those
// whose ServiceID points at it, in inventory order
func (snap *snapshot) serviceDevices(svc *domainInventory.Service) []*domainInventory.Device {
	members := make(map[string]bool, len(svc.DeviceIDs))
	for _, id := range svc.DeviceIDs {
		members[id] = true
	}
	var out []*domainInventory.Device
	for _, d := range snap.devices {
		if members[d.ID] || d.ServiceID == svc.ID {
			out = append(out, d)
		}
	}
	return out
}

func (snap *snapshot) serviceIn(svc *domainInventory.Service, location string) bool {
	for _, d := range snap.serviceDevices(svc) {
		if snap.deviceIn(d.ID, location) {
			return true
		}
	}
	return false
}

// parseIPRange returns a predicate for the range filter, or nil when the
// filter is unset
func parseIPRange(value string) (func(addr string) bool, error) {
	value = filterValue(value)
	if value == "" {
		return nil, nil
	}
	if cidr, ok := ipRangeShorthands[value]; ok {
		value = cidr
	}
	if _, err := netip.ParsePrefix(value); err != nil {
		return nil, appErrors.NewAppError(
			appErrors.CodeValidation,
			fmt.Sprintf("Invalid IP range %q", value),
			err).WithDetail("ip_range", "cidr")
	}
	return func(addr string) bool {
		return domainInventory.Contains(value, addr)
	}, nil
}

func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, anyFilter) {
		return ""
	}
	return v
}

// matchAny reports whether any field contains query. query is already lowercased.
func matchAny(query string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func anyAddress(addrs []string, pred func(string) bool) bool {
	for _, a := range addrs {
		if pred(a) {
			return true
		}
	}
	return false
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return part * 100 / total
}
