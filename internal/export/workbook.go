package export

import (
	"fmt"
	"io"

	"datacenter-inventory/internal/domain/inventory"
	domainRack "datacenter-inventory/internal/domain/rack"

	"github.com/xuri/excelize/v2"
)

const (
	RacksSheet      = "Racks"
	PlacementsSheet = "Placements"
)

var (
	rackHeader      = []interface{}{"Rack ID", "Rack", "Data Center", "Room", "Total Units", "Used Units", "Available Units", "Usage %", "Status"}
	placementHeader = []interface{}{"Rack ID", "Device ID", "Device", "Service", "Start Unit", "End Unit", "Size", "IP Address"}
)

// WriteWorkbook renders the occupancy report of racks as an .xlsx document.
// ips supplies the display address of each mounted device.
func WriteWorkbook(w io.Writer, racks []*domainRack.Rack, ips []*inventory.IPAddress) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RacksSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(PlacementsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, RacksSheet, 1, rackHeader, header); err != nil {
		return err
	}
	if err := writeRow(f, PlacementsSheet, 1, placementHeader, header); err != nil {
		return err
	}

	placementRow := 2
	for i, rack := range racks {
		stats := rack.Statistics()
		row := []interface{}{
			rack.ID,
			rack.Name,
			rack.Location.DataCenterName,
			rack.Location.RoomName,
			stats.TotalUnits,
			stats.UsedUnits,
			stats.AvailableUnits,
			stats.UsagePercent,
			string(stats.Status),
		}
		if err := writeRow(f, RacksSheet, i+2, row, 0); err != nil {
			return err
		}

		for _, p := range rack.Placements() {
			row := []interface{}{
				rack.ID,
				p.DeviceID,
				p.DeviceName,
				p.ServiceName,
				p.StartPosition,
				p.EndPosition(),
				p.DeviceSize,
				inventory.DisplayIP(ips, p.DeviceID),
			}
			if err := writeRow(f, PlacementsSheet, placementRow, row, 0); err != nil {
				return err
			}
			placementRow++
		}
	}

	if err := f.SetColWidth(RacksSheet, "A", "I", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(PlacementsSheet, "A", "H", 18); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	if style == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}
