package rack

import (
	"context"
	"io"
	"time"

	"datacenter-inventory/internal/domain/inventory"
	domainRack "datacenter-inventory/internal/domain/rack"
	"datacenter-inventory/internal/events"
	"datacenter-inventory/internal/export"
	"datacenter-inventory/internal/logger"
	"datacenter-inventory/internal/metrics"
	appErrors "datacenter-inventory/pkg/errors"
	"datacenter-inventory/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	opInstall    = "install"
	opUninstall  = "uninstall"
	opMove       = "move"
	opCreateRack = "create_rack"
)

// DefaultRackUnits is used when a rack is created without a height
const DefaultRackUnits = 42

// Service implements rack placement use cases
type Service struct {
	rackRepo      domainRack.Repository
	inventoryRepo inventory.Repository
	publisher     events.Publisher
	metrics       *metrics.Recorder
	now           func() time.Time
}

// NewService creates a new rack service. publisher and recorder may be nil.
func NewService(rackRepo domainRack.Repository, inventoryRepo inventory.Repository, publisher events.Publisher, recorder *metrics.Recorder) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		rackRepo:      rackRepo,
		inventoryRepo: inventoryRepo,
		publisher:     publisher,
		metrics:       recorder,
		now:           time.Now,
	}
}

func (s *Service) ListRacks(ctx context.Context, filter *RackFilterRequest) ([]RackSummary, error) {
	if filter == nil {
		filter = &RackFilterRequest{}
	}
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, validationError(err)
	}

	racks, err := s.rackRepo.List(ctx, &domainRack.Filter{DataCenterID: filter.DataCenterID, RoomID: filter.RoomID})
	if err != nil {
		return nil, ToAppError(err)
	}

	summaries := make([]RackSummary, len(racks))
	for i, r := range racks {
		summaries[i] = ToRackSummary(r)
	}
	return summaries, nil
}

func (s *Service) GetRack(ctx context.Context, rackID string) (*RackDetailResponse, error) {
	r, err := s.rackRepo.Get(ctx, rackID)
	if err != nil {
		return nil, ToAppError(err)
	}
	ips, err := s.inventoryRepo.ListIPs(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}

	detail := &RackDetailResponse{
		RackSummary: ToRackSummary(r),
		Units:       make([]UnitResponse, 0, r.TotalUnits),
		Placements:  []PlacementResponse{},
	}

	for _, u := range r.Units() {
		unit := UnitResponse{Position: u.Position, Occupied: !u.IsFree()}
		if occ := u.Occupant; occ != nil {
			unit.DeviceID = occ.DeviceID
			unit.DeviceName = occ.DeviceName
			unit.DeviceSize = occ.DeviceSize
			unit.ServiceID = occ.ServiceID
			unit.ServiceName = occ.ServiceName
			unit.IPAddress = inventory.DisplayIP(ips, occ.DeviceID)
		}
		detail.Units = append(detail.Units, unit)
	}
	for _, p := range r.Placements() {
		detail.Placements = append(detail.Placements, ToPlacementResponse(r, p, inventory.DisplayIP(ips, p.DeviceID)))
	}
	return detail, nil
}

// Availability lists every start position where a device of size fits
func (s *Service) Availability(ctx context.Context, rackID string, size int) (*AvailabilityResponse, error) {
	r, err := s.rackRepo.Get(ctx, rackID)
	if err != nil {
		return nil, ToAppError(err)
	}
	positions, err := r.AvailableStartPositions(size)
	if err != nil {
		return nil, ToAppError(err)
	}
	return &AvailabilityResponse{RackID: r.ID, Size: size, Positions: positions}, nil
}

func (s *Service) Statistics(ctx context.Context, rackID string) (*StatisticsResponse, error) {
	r, err := s.rackRepo.Get(ctx, rackID)
	if err != nil {
		return nil, ToAppError(err)
	}
	ips, err := s.inventoryRepo.ListIPs(ctx)
	if err != nil {
		return nil, ToAppError(err)
	}

	stats := r.Statistics()
	return &StatisticsResponse{
		RackID:         r.ID,
		RackName:       r.Name,
		TotalUnits:     stats.TotalUnits,
		UsedUnits:      stats.UsedUnits,
		AvailableUnits: stats.AvailableUnits,
		UsagePercent:   stats.UsagePercent,
		DeviceCount:    stats.DeviceCount,
		ServiceCount:   stats.ServiceCount,
		Devices: toShareResponses(stats.Devices, func(id string) string {
			return inventory.DisplayIP(ips, id)
		}),
		Services: toShareResponses(stats.Services, nil),
		Status:   stats.Status,
	}, nil
}

// InstallDevice mounts an inventory device in a rack. Name and service are
// copied from the inventory record.
func (s *Service) InstallDevice(ctx context.Context, rackID string, req *InstallDeviceRequest) (*PlacementResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, s.fail(opInstall, validationError(err))
	}

	device, err := s.inventoryRepo.GetDevice(ctx, req.DeviceID)
	if err != nil {
		return nil, s.fail(opInstall, err)
	}
	if err := ValidateInstallable(device); err != nil {
		return nil, s.fail(opInstall, err)
	}

	placement := domainRack.Placement{
		DeviceID:      device.ID,
		DeviceName:    device.Name,
		DeviceSize:    req.DeviceSize,
		ServiceID:     device.ServiceID,
		ServiceName:   device.ServiceName,
		StartPosition: req.StartPosition,
	}

	updated, err := s.rackRepo.Update(ctx, rackID, req.ExpectedVersion, func(r *domainRack.Rack) error {
		return r.Install(placement)
	})
	if err != nil {
		return nil, s.fail(opInstall, err)
	}

	logger.Info("Device installed",
		zap.String("rack_id", updated.ID),
		zap.String("device_id", placement.DeviceID),
		zap.Int("start_position", placement.StartPosition),
		zap.Int("device_size", placement.DeviceSize),
		zap.Uint64("rack_version", updated.Version),
		logger.Event(string(events.DeviceInstalled)),
	)
	s.succeed(ctx, opInstall, events.Event{
		Type:          events.DeviceInstalled,
		RackID:        updated.ID,
		DeviceID:      placement.DeviceID,
		StartPosition: placement.StartPosition,
		DeviceSize:    placement.DeviceSize,
		RackVersion:   updated.Version,
		Actor:         req.Actor,
	}, updated)

	resp := ToPlacementResponse(updated, placement, s.displayIP(ctx, placement.DeviceID))
	return &resp, nil
}

func (s *Service) UninstallDevice(ctx context.Context, rackID, deviceID string, req *UninstallDeviceRequest) (*PlacementResponse, error) {
	if req == nil {
		req = &UninstallDeviceRequest{}
	}

	var removed domainRack.Placement
	updated, err := s.rackRepo.Update(ctx, rackID, req.ExpectedVersion, func(r *domainRack.Rack) error {
		p, err := r.Uninstall(deviceID)
		removed = p
		return err
	})
	if err != nil {
		return nil, s.fail(opUninstall, err)
	}

	logger.Info("Device uninstalled",
		zap.String("rack_id", updated.ID),
		zap.String("device_id", deviceID),
		zap.Int("start_position", removed.StartPosition),
		zap.Uint64("rack_version", updated.Version),
		logger.Event(string(events.DeviceUninstalled)),
	)
	s.succeed(ctx, opUninstall, events.Event{
		Type:          events.DeviceUninstalled,
		RackID:        updated.ID,
		DeviceID:      deviceID,
		StartPosition: removed.StartPosition,
		DeviceSize:    removed.DeviceSize,
		RackVersion:   updated.Version,
		Actor:         req.Actor,
	}, updated)

	resp := ToPlacementResponse(updated, removed, "")
	return &resp, nil
}

// MoveDevice relocates a device, possibly across racks. Both racks are
// committed together or not at all.
func (s *Service) MoveDevice(ctx context.Context, req *MoveDeviceRequest) (*MoveResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, s.fail(opMove, validationError(err))
	}
	if err := ValidateMoveRequest(req); err != nil {
		return nil, s.fail(opMove, err)
	}

	var moved domainRack.Placement
	source, target, err := s.rackRepo.UpdatePair(ctx, req.SourceRackID, req.TargetRackID, req.ExpectedVersions, func(src, dst *domainRack.Rack) error {
		p, err := domainRack.Move(src, dst, req.DeviceID, req.NewStartPosition)
		moved = p
		return err
	})
	if err != nil {
		return nil, s.fail(opMove, err)
	}

	logger.Info("Device moved",
		zap.String("device_id", req.DeviceID),
		zap.String("source_rack_id", source.ID),
		zap.String("target_rack_id", target.ID),
		zap.Int("start_position", moved.StartPosition),
		logger.Event(string(events.DeviceMoved)),
	)
	s.succeed(ctx, opMove, events.Event{
		Type:          events.DeviceMoved,
		RackID:        target.ID,
		SourceRackID:  source.ID,
		DeviceID:      req.DeviceID,
		StartPosition: moved.StartPosition,
		DeviceSize:    moved.DeviceSize,
		RackVersion:   target.Version,
		Actor:         req.Actor,
	}, source, target)

	return &MoveResponse{
		Placement:  ToPlacementResponse(target, moved, s.displayIP(ctx, req.DeviceID)),
		SourceRack: ToRackSummary(source),
		TargetRack: ToRackSummary(target),
	}, nil
}

// CreateRack adds an empty rack to a room. The id is generated when absent.
func (s *Service) CreateRack(ctx context.Context, req *CreateRackRequest) (*RackSummary, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, s.fail(opCreateRack, validationError(err))
	}

	dc, err := s.inventoryRepo.GetDataCenter(ctx, req.DataCenterID)
	if err != nil {
		return nil, s.fail(opCreateRack, err)
	}
	var room *inventory.Room
	for i := range dc.Rooms {
		if dc.Rooms[i].ID == req.RoomID {
			room = &dc.Rooms[i]
			break
		}
	}
	if room == nil {
		return nil, s.fail(opCreateRack, inventory.ErrRoomNotFound)
	}

	id := req.ID
	if id == "" {
		id = "rack-" + uuid.NewString()
	}
	totalUnits := req.TotalUnits
	if totalUnits == 0 {
		totalUnits = DefaultRackUnits
	}

	r, err := domainRack.NewRack(id, utils.SanitizeString(req.Name), totalUnits, domainRack.Location{
		DataCenterID:   dc.ID,
		DataCenterName: dc.Name,
		RoomID:         room.ID,
		RoomName:       room.Name,
	})
	if err != nil {
		return nil, s.fail(opCreateRack, err)
	}
	if err := s.rackRepo.Create(ctx, r); err != nil {
		return nil, s.fail(opCreateRack, err)
	}
	if err := s.inventoryRepo.AddRackToRoom(ctx, dc.ID, room.ID, r.ID); err != nil {
		return nil, s.fail(opCreateRack, err)
	}

	logger.Info("Rack created",
		zap.String("rack_id", r.ID),
		zap.String("data_center_id", dc.ID),
		zap.String("room_id", room.ID),
		zap.Int("total_units", r.TotalUnits),
		logger.Event(string(events.RackCreated)),
	)
	s.succeed(ctx, opCreateRack, events.Event{
		Type:   events.RackCreated,
		RackID: r.ID,
		Actor:  req.Actor,
	}, r)

	summary := ToRackSummary(r)
	return &summary, nil
}

// ExportWorkbook writes the occupancy of every rack as an .xlsx document
func (s *Service) ExportWorkbook(ctx context.Context, w io.Writer) error {
	racks, err := s.rackRepo.List(ctx, nil)
	if err != nil {
		return ToAppError(err)
	}
	ips, err := s.inventoryRepo.ListIPs(ctx)
	if err != nil {
		return ToAppError(err)
	}
	return export.WriteWorkbook(w, racks, ips)
}

// RefreshMetrics publishes the occupancy gauges of every rack
func (s *Service) RefreshMetrics(ctx context.Context) error {
	racks, err := s.rackRepo.List(ctx, nil)
	if err != nil {
		return err
	}
	for _, r := range racks {
		s.metrics.ObserveRack(r)
	}
	return nil
}

func (s *Service) displayIP(ctx context.Context, deviceID string) string {
	ips, err := s.inventoryRepo.ListIPs(ctx)
	if err != nil {
		return ""
	}
	return inventory.DisplayIP(ips, deviceID)
}

func (s *Service) fail(operation string, err error) *appErrors.AppError {
	appErr := ToAppError(err)
	s.metrics.OperationFailed(operation, appErr.Code)
	logger.Debug("Placement rejected",
		zap.String("operation", operation),
		zap.String("code", appErr.Code),
		zap.Error(err),
	)
	return appErr
}

// succeed records a committed operation. Publishing is best effort: the
// change is already committed when delivery fails.
func (s *Service) succeed(ctx context.Context, operation string, event events.Event, racks ...*domainRack.Rack) {
	s.metrics.OperationSucceeded(operation)
	for _, r := range racks {
		s.metrics.ObserveRack(r)
	}

	event.OccurredAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish placement event",
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}
