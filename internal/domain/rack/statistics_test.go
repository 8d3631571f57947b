package rack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUsage(t *testing.T) {
	cases := []struct {
		percent int
		want    UsageStatus
	}{
		{0, UsageAvailable},
		{40, UsageAvailable},
		{41, UsagePartiallyUsed},
		{80, UsagePartiallyUsed},
		{81, UsageFull},
		{100, UsageFull},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyUsage(tc.percent), "usage %d%%", tc.percent)
	}
}

func TestStatistics(t *testing.T) {
	r := newTestRack(t, "rack-1", 42)

	empty := r.Statistics()
	assert.Equal(t, 0, empty.UsedUnits)
	assert.Equal(t, 42, empty.AvailableUnits)
	assert.Equal(t, UsageAvailable, empty.Status)
	assert.NotNil(t, empty.Devices)
	assert.NotNil(t, empty.Services)

	web1 := Placement{DeviceID: "dev-1", DeviceName: "Web Server 1", DeviceSize: 2, ServiceID: "svc-1", ServiceName: "Web Service", StartPosition: 5}
	web2 := Placement{DeviceID: "dev-5", DeviceName: "Web Server 2", DeviceSize: 2, ServiceID: "svc-1", ServiceName: "Web Service", StartPosition: 1}
	backup := Placement{DeviceID: "dev-4", DeviceName: "Backup Server", DeviceSize: 3, StartPosition: 20}
	require.NoError(t, r.Install(web1))
	require.NoError(t, r.Install(web2))
	require.NoError(t, r.Install(backup))

	stats := r.Statistics()
	assert.Equal(t, 42, stats.TotalUnits)
	assert.Equal(t, 7, stats.UsedUnits)
	assert.Equal(t, 35, stats.AvailableUnits)
	assert.Equal(t, 16, stats.UsagePercent)
	assert.Equal(t, 3, stats.DeviceCount)
	assert.Equal(t, 1, stats.ServiceCount)

	require.Len(t, stats.Devices, 3)
	assert.Equal(t, "dev-5", stats.Devices[0].ID)
	assert.Equal(t, "dev-1", stats.Devices[1].ID)
	assert.Equal(t, "dev-4", stats.Devices[2].ID)
	assert.Equal(t, 3, stats.Devices[2].Units)
	assert.Equal(t, 7, stats.Devices[2].Percent)
	assert.Equal(t, 4, stats.Devices[0].Percent)

	require.Len(t, stats.Services, 1)
	assert.Equal(t, UnitShare{ID: "svc-1", Name: "Web Service", Units: 4, Percent: 9, StartPosition: 1}, stats.Services[0])
}

func TestStatisticsStatusTracksOccupancy(t *testing.T) {
	r := newTestRack(t, "rack-1", 10)
	require.NoError(t, r.Install(Placement{DeviceID: "a", DeviceSize: 5, StartPosition: 1}))
	assert.Equal(t, UsagePartiallyUsed, r.Statistics().Status)

	require.NoError(t, r.Install(Placement{DeviceID: "b", DeviceSize: 4, StartPosition: 6}))
	assert.Equal(t, 90, r.Statistics().UsagePercent)
	assert.Equal(t, UsageFull, r.Statistics().Status)

	_, err := r.Uninstall("a")
	require.NoError(t, err)
	assert.Equal(t, UsageAvailable, r.Statistics().Status)
}
