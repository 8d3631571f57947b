package rack

// UsageStatus classifies how full a rack is
type UsageStatus string

const (
	UsageAvailable     UsageStatus = "available"
	UsagePartiallyUsed UsageStatus = "partially_used"
	UsageFull          UsageStatus = "full"
)

const (
	fullThreshold    = 80
	partialThreshold = 40
)

// ClassifyUsage maps a usage percentage to a status.
// Full above 80%, partially used above 40%, available otherwise.
func ClassifyUsage(usagePercent int) UsageStatus {
	switch {
	case usagePercent > fullThreshold:
		return UsageFull
	case usagePercent > partialThreshold:
		return UsagePartiallyUsed
	default:
		return UsageAvailable
	}
}

// UnitShare is the footprint of one device or service in a rack
type UnitShare struct {
	ID            string
	Name          string
	Units         int
	Percent       int
	StartPosition int
}

// Statistics holds usage figures derived from the current occupancy
type Statistics struct {
	TotalUnits     int
	UsedUnits      int
	AvailableUnits int
	UsagePercent   int
	DeviceCount    int
	ServiceCount   int
	Devices        []UnitShare
	Services       []UnitShare
	Status         UsageStatus
}

// Statistics computes usage figures. Shares are ordered by their lowest unit.
func (r *Rack) Statistics() Statistics {
	stats := Statistics{
		TotalUnits: r.TotalUnits,
		Devices:    []UnitShare{},
		Services:   []UnitShare{},
	}

	deviceIdx := make(map[string]int)
	serviceIdx := make(map[string]int)

	for _, u := range r.units {
		if u.Occupant == nil {
			continue
		}
		stats.UsedUnits++

		occ := u.Occupant
		if i, ok := deviceIdx[occ.DeviceID]; ok {
			stats.Devices[i].Units++
		} else {
			deviceIdx[occ.DeviceID] = len(stats.Devices)
			stats.Devices = append(stats.Devices, UnitShare{
				ID:            occ.DeviceID,
				Name:          occ.DeviceName,
				Units:         1,
				StartPosition: u.Position,
			})
		}

		if occ.ServiceID == "" {
			continue
		}
		if i, ok := serviceIdx[occ.ServiceID]; ok {
			stats.Services[i].Units++
		} else {
			serviceIdx[occ.ServiceID] = len(stats.Services)
			stats.Services = append(stats.Services, UnitShare{
				ID:            occ.ServiceID,
				Name:          occ.ServiceName,
				Units:         1,
				StartPosition: u.Position,
			})
		}
	}

	for i := range stats.Devices {
		stats.Devices[i].Percent = percentOf(stats.Devices[i].Units, r.TotalUnits)
	}
	for i := range stats.Services {
		stats.Services[i].Percent = percentOf(stats.Services[i].Units, r.TotalUnits)
	}

	stats.AvailableUnits = r.TotalUnits - stats.UsedUnits
	stats.UsagePercent = percentOf(stats.UsedUnits, r.TotalUnits)
	stats.DeviceCount = len(stats.Devices)
	stats.ServiceCount = len(stats.Services)
	stats.Status = ClassifyUsage(stats.UsagePercent)
	return stats
}

// percentOf returns floor(part / total * 100)
func percentOf(part, total int) int {
	if total <= 0 {
		return 0
	}
	return part * 100 / total
}
