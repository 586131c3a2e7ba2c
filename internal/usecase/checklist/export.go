package checklist

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	domain "fleet-checklist-backend/internal/domain/checklist"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

type ExportInput struct {
	VehicleNumber string
	Year          int
	Month         int
	Format        string
}

type ExportResult struct {
	// set for CSV exports
	Filename    string
	ContentType string
	CSV         []byte
	// set for JSON exports
	Records []domain.Checklist
}

var csvHeader = []string{
	"Date",
	"Vehicle Number",
	"Parking Brake",
	"Fluid Levels",
	"Tires",
	"Engine Fluids",
	"Lights",
	"Doors/Seatbelts",
	"Emergency Equipment",
	"Overall Status",
	"Notes",
	"Status",
}

// Export lists the calendar month's records, optionally restricted to one
// vehicle, and renders them as CSV (default) or the raw record list.
func (u *Usecase) Export(ctx context.Context, in ExportInput) (*ExportResult, error) {
	monthStart := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.Local)
	nextMonth := monthStart.AddDate(0, 1, 0)

	records, err := u.repo.ListInRange(ctx, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Checklist{}
	}
	if in.VehicleNumber != "" {
		filtered := make([]domain.Checklist, 0, len(records))
		for _, c := range records {
			if c.VehicleNumber == in.VehicleNumber {
				filtered = append(filtered, c)
			}
		}
		records = filtered
	}

	if in.Format != FormatCSV {
		return &ExportResult{Records: records}, nil
	}

	body, err := renderCSV(records)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    exportFilename(in.VehicleNumber, monthStart.Month(), in.Year),
		ContentType: "text/csv",
		CSV:         body,
	}, nil
}

func exportFilename(vehicleNumber string, month time.Month, year int) string {
	vehicle := vehicleNumber
	if vehicle == "" {
		vehicle = "all_vehicles"
	}
	return fmt.Sprintf("checklist_%s_%s_%d.csv", vehicle, month.String(), year)
}

func renderCSV(records []domain.Checklist) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, c := range records {
		row := []string{
			c.SubmissionDate.Format("2006-01-02"),
			c.VehicleNumber,
			passFail(c.ParkingBrake),
			passFail(c.FluidLevels),
			passFail(c.Tires),
			passFail(c.EngineFluids),
			passFail(c.Lights),
			passFail(c.DoorsAndSeatbelts),
			passFail(c.EmergencyEquipment),
			overallLabel(c.OverallStatus),
			c.Notes,
			strings.ToUpper(string(c.Status)),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func overallLabel(s domain.OverallStatus) string {
	if s == domain.OverallAllPassed {
		return "ALL PASSED"
	}
	return "NEEDS ATTENTION"
}
