package checklist

import (
	"context"
	"errors"
	"math"
	"time"

	domain "fleet-checklist-backend/internal/domain/checklist"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultRecentLimit = 50

// dashboard shows the last handful of submissions, not the full recent page
const dashboardRecentLimit = 5

type Usecase struct {
	repo domain.Repository
	log  *zap.SugaredLogger

	// injectable clock for the "today" and calendar-month windows
	now func() time.Time
}

func NewUsecase(r domain.Repository, log *zap.SugaredLogger) *Usecase {
	return &Usecase{repo: r, log: log, now: time.Now}
}

type SubmitInput struct {
	VehicleNumber string
	Inspection    domain.Inspection
	Notes         string
	Status        domain.Status
}

// Submit validates the one-per-vehicle-per-day rule and persists a completed
// checklist. A payload marked draft routes through SaveDraft instead. The
// pre-check gives a friendly conflict; the storage unique index backstops the
// concurrent case.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*domain.Checklist, error) {
	if in.Status == domain.StatusDraft {
		return u.SaveDraft(ctx, in)
	}

	start, end := u.todayWindow()
	existing, err := u.repo.GetTodayForVehicle(ctx, in.VehicleNumber, start, end)
	switch {
	case err == nil:
		if existing.Status != domain.StatusDraft {
			return nil, domain.ErrDuplicateSubmission
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	c := u.buildRecord(in, domain.StatusCompleted)
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	u.log.Infow("checklist submitted", "id", c.ID, "vehicle", c.VehicleNumber, "overall", c.OverallStatus)
	return c, nil
}

// SaveDraft persists with draft status and no duplicate check.
func (u *Usecase) SaveDraft(ctx context.Context, in SubmitInput) (*domain.Checklist, error) {
	c := u.buildRecord(in, domain.StatusDraft)
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	u.log.Infow("checklist draft saved", "id", c.ID, "vehicle", c.VehicleNumber)
	return c, nil
}

func (u *Usecase) buildRecord(in SubmitInput, status domain.Status) *domain.Checklist {
	return &domain.Checklist{
		VehicleNumber:      in.VehicleNumber,
		ParkingBrake:       in.Inspection.ParkingBrake,
		FluidLevels:        in.Inspection.FluidLevels,
		Tires:              in.Inspection.Tires,
		EngineFluids:       in.Inspection.EngineFluids,
		Lights:             in.Inspection.Lights,
		DoorsAndSeatbelts:  in.Inspection.DoorsAndSeatbelts,
		EmergencyEquipment: in.Inspection.EmergencyEquipment,
		Notes:              in.Notes,
		Status:             status,
		OverallStatus:      domain.DeriveOverallStatus(in.Inspection),
	}
}

func (u *Usecase) Get(ctx context.Context, id string) (*domain.Checklist, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (u *Usecase) ListRecent(ctx context.Context, limit int) ([]domain.Checklist, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	out, err := u.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Checklist{}
	}
	return out, nil
}

type UpdateInput struct {
	VehicleNumber      *string
	ParkingBrake       *bool
	FluidLevels        *bool
	Tires              *bool
	EngineFluids       *bool
	Lights             *bool
	DoorsAndSeatbelts  *bool
	EmergencyEquipment *bool
	Notes              *string
	Status             *domain.Status
}

func (in UpdateInput) touchesInspection() bool {
	return in.ParkingBrake != nil || in.FluidLevels != nil || in.Tires != nil ||
		in.EngineFluids != nil || in.Lights != nil || in.DoorsAndSeatbelts != nil ||
		in.EmergencyEquipment != nil
}

// Update merges the partial payload onto the stored record. When any
// inspection item is touched the overall status is recomputed against the
// merged set, not just the delta. Id and submission date never change.
func (u *Usecase) Update(ctx context.Context, id string, in UpdateInput) (*domain.Checklist, error) {
	c, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.VehicleNumber != nil {
		c.VehicleNumber = *in.VehicleNumber
	}
	if in.ParkingBrake != nil {
		c.ParkingBrake = *in.ParkingBrake
	}
	if in.FluidLevels != nil {
		c.FluidLevels = *in.FluidLevels
	}
	if in.Tires != nil {
		c.Tires = *in.Tires
	}
	if in.EngineFluids != nil {
		c.EngineFluids = *in.EngineFluids
	}
	if in.Lights != nil {
		c.Lights = *in.Lights
	}
	if in.DoorsAndSeatbelts != nil {
		c.DoorsAndSeatbelts = *in.DoorsAndSeatbelts
	}
	if in.EmergencyEquipment != nil {
		c.EmergencyEquipment = *in.EmergencyEquipment
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.Status != nil {
		c.Status = *in.Status
	}

	if in.touchesInspection() {
		c.OverallStatus = domain.DeriveOverallStatus(c.Inspection())
	}

	if err := u.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// TodayForVehicle returns the newest checklist for the vehicle in today's
// window, or nil when there is none.
func (u *Usecase) TodayForVehicle(ctx context.Context, vehicleNumber string) (*domain.Checklist, error) {
	start, end := u.todayWindow()
	c, err := u.repo.GetTodayForVehicle(ctx, vehicleNumber, start, end)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

type DashboardDTO struct {
	MonthlyCount      int                `json:"monthlyCount"`
	DaysInMonth       int                `json:"daysInMonth"`
	ComplianceRate    int                `json:"complianceRate"`
	RecentSubmissions []domain.Checklist `json:"recentSubmissions"`
}

// Dashboard summarizes the current calendar month. The compliance rate is a
// raw ratio rounded to a percentage; it is not clamped and can exceed 100.
func (u *Usecase) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	now := u.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	daysInMonth := nextMonth.AddDate(0, 0, -1).Day()

	monthly, err := u.repo.ListInRange(ctx, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}
	recent, err := u.repo.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.Checklist{}
	}

	count := len(monthly)
	rate := int(math.Round(float64(count) / float64(daysInMonth) * 100))

	return &DashboardDTO{
		MonthlyCount:      count,
		DaysInMonth:       daysInMonth,
		ComplianceRate:    rate,
		RecentSubmissions: recent,
	}, nil
}

// todayWindow is half-open [local midnight, next midnight): a submission
// landing exactly at next midnight belongs to the next day.
func (u *Usecase) todayWindow() (time.Time, time.Time) {
	now := u.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}
