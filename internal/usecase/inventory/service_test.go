package inventory

import (
	"context"
	"errors"
	"math"
	"testing"

	domainInventory "datacenter-inventory/internal/domain/inventory"
	domainRack "datacenter-inventory/internal/domain/rack"
	"datacenter-inventory/internal/events"
	"datacenter-inventory/internal/events/mocks"
	"datacenter-inventory/internal/fixture"
	"datacenter-inventory/internal/infrastructure/memory"
	appErrors "datacenter-inventory/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testEnv struct {
	service   *Service
	racks     *memory.RackRepository
	inventory *memory.InventoryRepository
	publisher *mocks.MockPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	racks := memory.NewRackRepository()
	inv := memory.NewInventoryRepository()
	require.NoError(t, fixture.Seed(context.Background(), fixture.Default(), racks, inv))

	publisher := mocks.NewMockPublisher(ctrl)
	return &testEnv{
		service:   NewService(inv, racks, publisher),
		racks:     racks,
		inventory: inv,
		publisher: publisher,
	}
}

// expectEvent captures the next published event
func (env *testEnv) expectEvent(err error) *events.Event {
	var got events.Event
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e events.Event) error {
			got = e
			return err
		})
	return &got
}

func requireCode(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := appErrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func boolPtr(b bool) *bool { return &b }

func deviceIDs(devices []DeviceResponse) []string {
	ids := make([]string, len(devices))
	for i, d := range devices {
		ids[i] = d.ID
	}
	return ids
}

func ipIDs(ips []IPResponse) []string {
	ids := make([]string, len(ips))
	for i, ip := range ips {
		ids[i] = ip.ID
	}
	return ids
}

func TestListDevices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	all, err := env.service.ListDevices(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, all.Total)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, defaultPageSize, all.PageSize)
	assert.Equal(t, 1, all.TotalPages)

	web := all.Devices[0]
	assert.Equal(t, "dev-1", web.ID)
	assert.Equal(t, "192.168.1.10", web.IPAddress)
	require.NotNil(t, web.Placement)
	assert.Equal(t, "rack-1", web.Placement.RackID)
	assert.Equal(t, "dc-a", web.Placement.DataCenterID)
	assert.Equal(t, 5, web.Placement.StartPosition)
	assert.Equal(t, 6, web.Placement.EndPosition)
	assert.Nil(t, all.Devices[3].Placement)

	cases := []struct {
		name   string
		filter DeviceFilterRequest
		want   []string
	}{
		{"status", DeviceFilterRequest{Status: "Active"}, []string{"dev-1", "dev-2", "dev-3"}},
		{"service", DeviceFilterRequest{ServiceID: "svc-1"}, []string{"dev-1", "dev-5"}},
		{"unplaced", DeviceFilterRequest{Placed: boolPtr(false)}, []string{"dev-4", "dev-5"}},
		{"placed", DeviceFilterRequest{Placed: boolPtr(true)}, []string{"dev-1", "dev-2", "dev-3"}},
		{"model search", DeviceFilterRequest{Search: "DELL"}, []string{"dev-1", "dev-3", "dev-4", "dev-5"}},
		{"address search", DeviceFilterRequest{Search: "10.0.0"}, []string{"dev-1"}},
		{"service name search", DeviceFilterRequest{Search: "database"}, []string{"dev-2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filter := tc.filter
			resp, err := env.service.ListDevices(ctx, &filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, deviceIDs(resp.Devices))
		})
	}
}

func TestListDevicesPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	page, err := env.service.ListDevices(ctx, &DeviceFilterRequest{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"dev-3", "dev-4"}, deviceIDs(page.Devices))
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 5, page.Total)

	beyond, err := env.service.ListDevices(ctx, &DeviceFilterRequest{Page: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Devices)
	assert.NotNil(t, beyond.Devices)

	last, err := env.service.ListDevices(ctx, &DeviceFilterRequest{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"dev-5"}, deviceIDs(last.Devices))

	for _, huge := range []int{1<<62 + 1, math.MaxInt} {
		var resp *DeviceListResponse
		require.NotPanics(t, func() {
			resp, err = env.service.ListDevices(ctx, &DeviceFilterRequest{Page: huge, PageSize: 2})
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Devices)
		assert.Equal(t, huge, resp.Page)
		assert.Equal(t, 5, resp.Total)
	}

	none, err := env.service.ListDevices(ctx, &DeviceFilterRequest{Search: "no-such-device"})
	require.NoError(t, err)
	assert.Empty(t, none.Devices)
	assert.Equal(t, 0, none.TotalPages)
}

func TestListDevicesRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.ListDevices(context.Background(), &DeviceFilterRequest{Status: "Broken"})
	appErr := requireCode(t, err, appErrors.CodeValidation)
	assert.Equal(t, "device_status", appErr.Details["status"])
}

func TestGetDevice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	detail, err := env.service.GetDevice(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "Web Server 1", detail.Name)
	assert.Equal(t, []string{"ip-1", "ip-5"}, ipIDs(detail.IPs))
	assert.Equal(t, "Web Service", detail.IPs[0].ServiceName)
	require.NotNil(t, detail.Placement)
	assert.Equal(t, "Room 1", detail.Placement.RoomName)

	unplaced, err := env.service.GetDevice(ctx, "dev-4")
	require.NoError(t, err)
	assert.Nil(t, unplaced.Placement)
	assert.Empty(t, unplaced.IPs)
	assert.Empty(t, unplaced.IPAddress)

	_, err = env.service.GetDevice(ctx, "dev-99")
	requireCode(t, err, appErrors.CodeDeviceNotFound)
}

func TestUpdateDeviceStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	event := env.expectEvent(nil)
	resp, err := env.service.UpdateDeviceStatus(ctx, "dev-4", &UpdateDeviceStatusRequest{
		Status: "Decommissioned",
		Notes:  "Retired after audit",
		Actor:  "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, domainInventory.DeviceDecommissioned, resp.Status)
	assert.Equal(t, "Retired after audit", resp.Notes)
	assert.Equal(t, events.DeviceStatusChanged, event.Type)
	assert.Equal(t, "dev-4", event.DeviceID)
	assert.Equal(t, "Decommissioned", event.Status)
	assert.Equal(t, "alice", event.Actor)
	assert.False(t, event.OccurredAt.IsZero())

	stored, err := env.inventory.GetDevice(ctx, "dev-4")
	require.NoError(t, err)
	assert.Equal(t, domainInventory.DeviceDecommissioned, stored.Status)

	_, err = env.service.UpdateDeviceStatus(ctx, "dev-4", &UpdateDeviceStatusRequest{Status: "Active"})
	appErr := requireCode(t, err, appErrors.CodeInvalidTransition)
	assert.Equal(t, "Decommissioned", appErr.Details["from"])
	assert.ErrorIs(t, err, appErrors.ErrInvalidStatusTransition)
}

func TestUpdateDeviceStatusRejectsDecommissioningPlacedDevice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.UpdateDeviceStatus(ctx, "dev-1", &UpdateDeviceStatusRequest{Status: "Decommissioned"})
	appErr := requireCode(t, err, appErrors.CodeInvalidTransition)
	assert.Equal(t, "rack-1", appErr.Details["placed_in"])

	stored, err := env.inventory.GetDevice(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, domainInventory.DeviceActive, stored.Status)

	_, err = env.racks.Update(ctx, "rack-1", nil, func(r *domainRack.Rack) error {
		_, err := r.Uninstall("dev-1")
		return err
	})
	require.NoError(t, err)

	env.expectEvent(nil)
	_, err = env.service.UpdateDeviceStatus(ctx, "dev-1", &UpdateDeviceStatusRequest{Status: "Decommissioned"})
	require.NoError(t, err)
}

func TestUpdateDeviceStatusSameStatusKeepsNotes(t *testing.T) {
	env := newTestEnv(t)

	env.expectEvent(errors.New("broker down"))
	resp, err := env.service.UpdateDeviceStatus(context.Background(), "dev-5", &UpdateDeviceStatusRequest{Status: "Maintenance"})
	require.NoError(t, err)
	assert.Equal(t, "Secondary web server - under maintenance", resp.Notes)
}

func TestUpdateDeviceStatusErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.UpdateDeviceStatus(ctx, "dev-1", &UpdateDeviceStatusRequest{Status: "Retired"})
	appErr := requireCode(t, err, appErrors.CodeValidation)
	assert.Equal(t, "device_status", appErr.Details["status"])

	_, err = env.service.UpdateDeviceStatus(ctx, "dev-99", &UpdateDeviceStatusRequest{Status: "Active"})
	requireCode(t, err, appErrors.CodeDeviceNotFound)
}

func TestValidateDeviceStatus(t *testing.T) {
	cases := []struct {
		from, to domainInventory.DeviceStatus
		ok       bool
	}{
		{domainInventory.DeviceActive, domainInventory.DeviceMaintenance, true},
		{domainInventory.DeviceMaintenance, domainInventory.DeviceActive, true},
		{domainInventory.DeviceInactive, domainInventory.DeviceDecommissioned, true},
		{domainInventory.DeviceDecommissioned, domainInventory.DeviceActive, false},
		{domainInventory.DeviceDecommissioned, domainInventory.DeviceMaintenance, false},
		{domainInventory.DeviceActive, domainInventory.DeviceActive, false},
	}
	for _, tc := range cases {
		err := ValidateDeviceStatus(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
		}
	}

	err := ValidateDeviceStatus("Retired", domainInventory.DeviceActive)
	assert.ErrorIs(t, err, domainInventory.ErrInvalidStatus)
}

func TestApplyIPStatus(t *testing.T) {
	base := domainInventory.IPAddress{ID: "ip-1", Address: "192.168.1.10", Status: domainInventory.IPAssigned, DeviceID: "dev-1", ServiceID: "svc-1"}

	available := ApplyIPStatus(base, &UpdateIPStatusRequest{Status: "Available"})
	assert.Empty(t, available.DeviceID)
	assert.Empty(t, available.ServiceID)

	reserved := ApplyIPStatus(base, &UpdateIPStatusRequest{Status: "Reserved"})
	assert.Empty(t, reserved.DeviceID)
	assert.Equal(t, "svc-1", reserved.ServiceID)

	reassigned := ApplyIPStatus(base, &UpdateIPStatusRequest{Status: "Assigned", DeviceID: "dev-4"})
	assert.Equal(t, "dev-4", reassigned.DeviceID)
	assert.Equal(t, "svc-1", reassigned.ServiceID)

	assert.Equal(t, "dev-1", base.DeviceID)
}

func TestUpdateIPStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	event := env.expectEvent(nil)
	resp, err := env.service.UpdateIPStatus(ctx, "ip-4", &UpdateIPStatusRequest{Status: "Assigned", DeviceID: "dev-4", Actor: "alice"})
	require.NoError(t, err)
	assert.Equal(t, domainInventory.IPAssigned, resp.Status)
	assert.Equal(t, "Backup Server", resp.DeviceName)
	assert.Equal(t, events.IPStatusChanged, event.Type)
	assert.Equal(t, "ip-4", event.IPID)
	assert.Equal(t, "dev-4", event.DeviceID)

	detail, err := env.service.GetDevice(ctx, "dev-4")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20", detail.IPAddress)

	env.expectEvent(nil)
	released, err := env.service.UpdateIPStatus(ctx, "ip-1", &UpdateIPStatusRequest{Status: "Available"})
	require.NoError(t, err)
	assert.Empty(t, released.DeviceID)
	assert.Empty(t, released.ServiceID)

	web, err := env.service.GetDevice(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.10", web.IPAddress)

	env.expectEvent(nil)
	reserved, err := env.service.UpdateIPStatus(ctx, "ip-2", &UpdateIPStatusRequest{Status: "Reserved"})
	require.NoError(t, err)
	assert.Empty(t, reserved.DeviceID)
	assert.Equal(t, "svc-2", reserved.ServiceID)
	assert.Equal(t, "Database Service", reserved.ServiceName)
}

func TestUpdateIPStatusErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.UpdateIPStatus(ctx, "ip-4", &UpdateIPStatusRequest{Status: "Assigned"})
	requireCode(t, err, appErrors.CodeValidation)
	assert.ErrorIs(t, err, domainInventory.ErrInvalidIPLinks)

	_, err = env.service.UpdateIPStatus(ctx, "ip-4", &UpdateIPStatusRequest{Status: "Assigned", DeviceID: "dev-99"})
	requireCode(t, err, appErrors.CodeDeviceNotFound)

	_, err = env.service.UpdateIPStatus(ctx, "ip-4", &UpdateIPStatusRequest{Status: "Assigned", ServiceID: "svc-99"})
	requireCode(t, err, appErrors.CodeNotFound)

	_, err = env.service.UpdateIPStatus(ctx, "ip-99", &UpdateIPStatusRequest{Status: "Available"})
	requireCode(t, err, appErrors.CodeNotFound)

	_, err = env.service.UpdateIPStatus(ctx, "ip-4", &UpdateIPStatusRequest{Status: "Leased"})
	appErr := requireCode(t, err, appErrors.CodeValidation)
	assert.Equal(t, "ip_status", appErr.Details["status"])

	stored, err := env.inventory.GetIP(ctx, "ip-4")
	require.NoError(t, err)
	assert.Equal(t, domainInventory.IPAvailable, stored.Status)
}

func TestListIPs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	all, err := env.service.ListIPs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Web Server 1", all[0].DeviceName)
	assert.Equal(t, "Web Service", all[0].ServiceName)

	assigned, err := env.service.ListIPs(ctx, &IPFilterRequest{Status: "Assigned"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ip-1", "ip-2", "ip-3", "ip-5"}, ipIDs(assigned))

	mgmt, err := env.service.ListIPs(ctx, &IPFilterRequest{Subnet: "10.0.0.0/24"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ip-5"}, ipIDs(mgmt))

	byDevice, err := env.service.ListIPs(ctx, &IPFilterRequest{Search: "web server"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ip-1", "ip-5"}, ipIDs(byDevice))

	_, err = env.service.ListIPs(ctx, &IPFilterRequest{Subnet: "nope"})
	requireCode(t, err, appErrors.CodeValidation)

	ip, err := env.service.GetIP(ctx, "ip-3")
	require.NoError(t, err)
	assert.Equal(t, "Application Server", ip.DeviceName)

	_, err = env.service.GetIP(ctx, "ip-99")
	requireCode(t, err, appErrors.CodeNotFound)
}

func TestGetService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	services, err := env.service.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 3)

	detail, err := env.service.GetService(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Web Team", detail.Owner)
	assert.Equal(t, []string{"dev-1", "dev-5"}, deviceIDs(detail.Devices))
	assert.Equal(t, []string{"ip-1", "ip-5"}, ipIDs(detail.IPs))
	assert.Equal(t, 2, detail.PlacedUnits)

	_, err = env.service.GetService(ctx, "svc-99")
	requireCode(t, err, appErrors.CodeNotFound)
}

func TestListSubnets(t *testing.T) {
	env := newTestEnv(t)

	subnets, err := env.service.ListSubnets(context.Background())
	require.NoError(t, err)
	require.Len(t, subnets, 3)

	assert.Equal(t, SubnetResponse{
		ID: "subnet-1", CIDR: "192.168.1.0/24", Description: "Primary Network",
		TotalIPs: 254, UsedIPs: 3, AvailableIPs: 251,
	}, subnets[0])
	assert.Equal(t, 254, subnets[1].AvailableIPs)
	assert.Equal(t, 1, subnets[2].UsedIPs)
}

func TestListDataCenters(t *testing.T) {
	env := newTestEnv(t)

	dcs, err := env.service.ListDataCenters(context.Background())
	require.NoError(t, err)
	require.Len(t, dcs, 2)
	assert.Equal(t, "DC-B", dcs[1].Name)
	require.Len(t, dcs[1].Rooms, 2)
	assert.Equal(t, []string{"rack-7", "rack-8", "rack-9"}, dcs[1].Rooms[0].RackIDs)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("text query spans every collection", func(t *testing.T) {
		resp, err := env.service.Search(ctx, &SearchRequest{Query: "Web"})
		require.NoError(t, err)
		assert.Equal(t, []string{"dev-1", "dev-5"}, deviceIDs(resp.Devices))
		require.Len(t, resp.Services, 1)
		assert.Equal(t, "svc-1", resp.Services[0].ID)
		assert.Equal(t, []string{"ip-1", "ip-5"}, ipIDs(resp.IPs))
		assert.Equal(t, 5, resp.Total)
	})

	t.Run("ip range shorthand", func(t *testing.T) {
		resp, err := env.service.Search(ctx, &SearchRequest{IPRange: "10.0.0.0"})
		require.NoError(t, err)
		assert.Equal(t, []string{"dev-1"}, deviceIDs(resp.Devices))
		assert.Equal(t, []string{"ip-5"}, ipIDs(resp.IPs))
	})

	t.Run("ip range cidr", func(t *testing.T) {
		resp, err := env.service.Search(ctx, &SearchRequest{IPRange: "192.168.1.8/29"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ip-1", "ip-2", "ip-3"}, ipIDs(resp.IPs))
	})

	t.Run("data center by id or name", func(t *testing.T) {
		resp, err := env.service.Search(ctx, &SearchRequest{DataCenter: "dc-b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"dev-2", "dev-3"}, deviceIDs(resp.Devices))
		assert.Len(t, resp.Services, 2)
		assert.Equal(t, []string{"ip-2", "ip-3"}, ipIDs(resp.IPs))

		byName, err := env.service.Search(ctx, &SearchRequest{DataCenter: "DC-A"})
		require.NoError(t, err)
		assert.Equal(t, []string{"dev-1"}, deviceIDs(byName.Devices))
	})

	t.Run("model and status", func(t *testing.T) {
		resp, err := env.service.Search(ctx, &SearchRequest{Model: "r640"})
		require.NoError(t, err)
		assert.Equal(t, []string{"dev-3", "dev-4"}, deviceIDs(resp.Devices))

		maint, err := env.service.Search(ctx, &SearchRequest{Status: "maintenance"})
		require.NoError(t, err)
		assert.Equal(t, []string{"dev-5"}, deviceIDs(maint.Devices))
		assert.Empty(t, maint.Services)
		assert.Empty(t, maint.IPs)
	})

	t.Run("any disables a filter", func(t *testing.T) {
		resp, err := env.service.Search(ctx, &SearchRequest{Status: "any", IPRange: "any", DataCenter: "any"})
		require.NoError(t, err)
		assert.Equal(t, 13, resp.Total)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := env.service.Search(ctx, &SearchRequest{IPRange: "bogus"})
		appErr := requireCode(t, err, appErrors.CodeValidation)
		assert.Equal(t, "cidr", appErr.Details["ip_range"])
	})
}

func TestServiceMembershipIncludesBackReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// dev-4 claims svc-3 but is not in the service's device list.
	dev, err := env.inventory.GetDevice(ctx, "dev-4")
	require.NoError(t, err)
	dev.ServiceID = "svc-3"
	dev.ServiceName = "Application Service"
	require.NoError(t, env.inventory.UpdateDevice(ctx, dev))
	_, err = env.racks.Update(ctx, "rack-4", nil, func(r *domainRack.Rack) error {
		return r.Install(domainRack.Placement{DeviceID: "dev-4", DeviceName: "Backup Server", DeviceSize: 1, StartPosition: 1})
	})
	require.NoError(t, err)

	detail, err := env.service.GetService(ctx, "svc-3")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev-3", "dev-4"}, deviceIDs(detail.Devices))

	resp, err := env.service.Search(ctx, &SearchRequest{DataCenter: "dc-a"})
	require.NoError(t, err)
	var services []string
	for _, svc := range resp.Services {
		services = append(services, svc.ID)
	}
	assert.Equal(t, []string{"svc-1", "svc-3"}, services)
}
func TestDashboardSummary(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.service.DashboardSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, UsageCounter{Total: 762, Used: 4, Available: 758, Percent: 0}, summary.IPAddresses)
	assert.Equal(t, UsageCounter{Total: 5, Used: 3, Available: 2, Percent: 60}, summary.Devices)
	assert.Equal(t, UsageCounter{Total: 504, Used: 5, Available: 499, Percent: 0}, summary.RackUnits)
	assert.Equal(t, 12, summary.Racks)

	require.Len(t, summary.Rooms, 4)
	roomA := summary.Rooms[2]
	assert.Equal(t, "room-a", roomA.RoomID)
	assert.Equal(t, 3, roomA.Racks)
	assert.Equal(t, UsageCounter{Total: 126, Used: 3, Available: 123, Percent: 2}, roomA.Units)
	assert.Equal(t, domainRack.UsageAvailable, roomA.Status)
	assert.Equal(t, 0, summary.Rooms[1].Units.Used)
}

func TestUserSummary(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.service.UserSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Services)
	assert.Equal(t, 5, summary.Devices)
	assert.Equal(t, map[string]int{"Active": 3, "Inactive": 0, "Maintenance": 0, "Planned": 0}, summary.ServiceStatus)
	assert.Equal(t, map[string]int{"Active": 3, "Inactive": 1, "Maintenance": 1, "Decommissioned": 0}, summary.DeviceStatus)
	assert.Equal(t, map[string]int{"High": 1, "Critical": 1, "Medium": 1}, summary.Criticality)
}
