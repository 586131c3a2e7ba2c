package checklist

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "fleet-checklist-backend/internal/domain/checklist"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ----- test doubles -----

type mockRepo struct {
	CreateFn             func(ctx context.Context, c *domain.Checklist) error
	GetByIDFn            func(ctx context.Context, id string) (*domain.Checklist, error)
	ListRecentFn         func(ctx context.Context, limit int) ([]domain.Checklist, error)
	GetTodayForVehicleFn func(ctx context.Context, vehicleNumber string, start, end time.Time) (*domain.Checklist, error)
	ListInRangeFn        func(ctx context.Context, start, end time.Time) ([]domain.Checklist, error)
	SaveFn               func(ctx context.Context, c *domain.Checklist) error
}

func (m *mockRepo) Create(ctx context.Context, c *domain.Checklist) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return errors.New("not implemented")
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*domain.Checklist, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepo) ListRecent(ctx context.Context, limit int) ([]domain.Checklist, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepo) GetTodayForVehicle(ctx context.Context, vehicleNumber string, start, end time.Time) (*domain.Checklist, error) {
	if m.GetTodayForVehicleFn != nil {
		return m.GetTodayForVehicleFn(ctx, vehicleNumber, start, end)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepo) ListInRange(ctx context.Context, start, end time.Time) ([]domain.Checklist, error) {
	if m.ListInRangeFn != nil {
		return m.ListInRangeFn(ctx, start, end)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepo) Save(ctx context.Context, c *domain.Checklist) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return errors.New("not implemented")
}

func newUsecase(repo domain.Repository) *Usecase {
	return NewUsecase(repo, zap.NewNop().Sugar())
}

func allPassing() domain.Inspection {
	return domain.Inspection{
		ParkingBrake: true, FluidLevels: true, Tires: true, EngineFluids: true,
		Lights: true, DoorsAndSeatbelts: true, EmergencyEquipment: true,
	}
}

// ----- submit -----

func TestSubmit_Success_DerivesAllPassed(t *testing.T) {
	var created *domain.Checklist
	uc := newUsecase(&mockRepo{
		GetTodayForVehicleFn: func(ctx context.Context, vehicleNumber string, start, end time.Time) (*domain.Checklist, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, c *domain.Checklist) error {
			c.ID = "cl-1"
			c.SubmissionDate = time.Now()
			created = c
			return nil
		},
	})

	got, err := uc.Submit(context.Background(), SubmitInput{
		VehicleNumber: "pz333m",
		Inspection:    allPassing(),
		Notes:         "all good",
	})
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if created == nil {
		t.Fatalf("Create was not called")
	}
	if got.Status != domain.StatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}
	if got.OverallStatus != domain.OverallAllPassed {
		t.Fatalf("overallStatus = %q, want all_passed", got.OverallStatus)
	}
	if got.ID != "cl-1" {
		t.Fatalf("id = %q, want repo-assigned id", got.ID)
	}
}

func TestSubmit_FailingItem_DerivesNeedsAttention(t *testing.T) {
	uc := newUsecase(&mockRepo{
		GetTodayForVehicleFn: func(ctx context.Context, vehicleNumber string, start, end time.Time) (*domain.Checklist, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, c *domain.Checklist) error { return nil },
	})

	in := SubmitInput{VehicleNumber: "pz333m", Inspection: allPassing()}
	in.Inspection.Lights = false

	got, err := uc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if got.OverallStatus != domain.OverallNeedsAttention {
		t.Fatalf("overallStatus = %q, want needs_attention", got.OverallStatus)
	}
}

func TestSubmit_DuplicateSameDay(t *testing.T) {
	createCalled := false
	uc := newUsecase(&mockRepo{
		GetTodayForVehicleFn: func(ctx context.Context, vehicleNumber string, start, end time.Time) (*domain.Checklist, error) {
			return &domain.Checklist{ID: "existing", VehicleNumber: vehicleNumber, Status: domain.StatusCompleted}, nil
		},
		CreateFn: func(ctx context.Context, c *domain.Checklist) error {
			createCalled = true
			return nil
		},
	})

	_, err := uc.Submit(context.Background(), SubmitInput{VehicleNumber: "pz333m", Inspection: allPassing()})
	if !errors.Is(err, domain.ErrDuplicateSubmission) {
		t.Fatalf("err = %v, want ErrDuplicateSubmission", err)
	}
	if createCalled {
		t.Fatalf("Create must not run after a duplicate hit")
	}
}

func TestSubmit_ExistingDraftDoesNotBlock(t *testing.T) {
	uc := newUsecase(&mockRepo{
		GetTodayForVehicleFn: func(ctx context.Context, vehicleNumber string, start, end time.Time) (*domain.Checklist, error) {
			return &domain.Checklist{ID: "draft-1", VehicleNumber: vehicleNumber, Status: domain.StatusDraft}, nil
		},
		CreateFn: func(ctx context.Context, c *domain.Checklist) error { return nil },
	})

	got, err := uc.Submit(context.Background(), SubmitInput{VehicleNumber: "pz333m", Inspection: allPassing()})
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if got.Status != domain.StatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}
}

func TestSubmit_TodayWindowIsLocalMidnightHalfOpen(t *testing.T) {
	fixed := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	var gotStart, gotEnd time.Time
	uc := newUsecase(&mockRepo{
		GetTodayForVehicleFn: func(ctx context.Context, vehicleNumber string, start, end time.Time) (*domain.Checklist, error) {
			gotStart, gotEnd = start, end
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, c *domain.Checklist) error { return nil },
	})
	uc.now = func() time.Time { return fixed }

	if _, err := uc.Submit(context.Background(), SubmitInput{VehicleNumber: "v", Inspection: allPassing()}); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	wantStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !gotStart.Equal(wantStart) {
		t.Fatalf("window start = %v, want %v", gotStart, wantStart)
	}
	if !gotEnd.Equal(wantStart.Add(24 * time.Hour)) {
		t.Fatalf("window end = %v, want %v", gotEnd, wantStart.Add(24*time.Hour))
	}
}

func TestSubmit_DraftStatusSkipsDuplicateCheck(t *testing.T) {
	uc := newUsecase(&mockRepo{
		GetTodayForVehicleFn: func(ctx context.Context, vehicleNumber string, start, end time.Time) (*domain.Checklist, error) {
			t.Fatalf("duplicate check must not run for drafts")
			return nil, nil
		},
		CreateFn: func(ctx context.Context, c *domain.Checklist) error { return nil },
	})

	got, err := uc.Submit(context.Background(), SubmitInput{
		VehicleNumber: "pz333m",
		Inspection:    allPassing(),
		Status:        domain.StatusDraft,
	})
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if got.Status != domain.StatusDraft {
		t.Fatalf("status = %q, want draft", got.Status)
	}
}

// ----- reads -----

func TestGet_MapsRecordNotFound(t *testing.T) {
	uc := newUsecase(&mockRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Checklist, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})
	_, err := uc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListRecent_DefaultLimit(t *testing.T) {
	var gotLimit int
	uc := newUsecase(&mockRepo{
		ListRecentFn: func(ctx context.Context, limit int) ([]domain.Checklist, error) {
			gotLimit = limit
			return nil, nil
		},
	})
	out, err := uc.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRecent err: %v", err)
	}
	if gotLimit != 50 {
		t.Fatalf("limit = %d, want 50", gotLimit)
	}
	if out == nil {
		t.Fatalf("nil slice leaked to caller")
	}
}

func TestTodayForVehicle_NoneIsNil(t *testing.T) {
	uc := newUsecase(&mockRepo{
		GetTodayForVehicleFn: func(ctx context.Context, vehicleNumber string, start, end time.Time) (*domain.Checklist, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})
	got, err := uc.TodayForVehicle(context.Background(), "pz333m")
	if err != nil {
		t.Fatalf("TodayForVehicle err: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

// ----- update -----

func storedAllPassed() *domain.Checklist {
	return &domain.Checklist{
		ID:                 "cl-1",
		VehicleNumber:      "pz333m",
		SubmissionDate:     time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		ParkingBrake:       true,
		FluidLevels:        true,
		Tires:              true,
		EngineFluids:       true,
		Lights:             true,
		DoorsAndSeatbelts:  true,
		EmergencyEquipment: true,
		Status:             domain.StatusDraft,
		OverallStatus:      domain.OverallAllPassed,
	}
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestUpdate_InspectionTouchRecomputesMergedStatus(t *testing.T) {
	var saved *domain.Checklist
	uc := newUsecase(&mockRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Checklist, error) {
			return storedAllPassed(), nil
		},
		SaveFn: func(ctx context.Context, c *domain.Checklist) error {
			saved = c
			return nil
		},
	})

	got, err := uc.Update(context.Background(), "cl-1", UpdateInput{Tires: boolPtr(false)})
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if got.OverallStatus != domain.OverallNeedsAttention {
		t.Fatalf("overallStatus = %q, want needs_attention", got.OverallStatus)
	}
	// untouched fields survive the merge
	if !got.ParkingBrake || !got.Lights || got.VehicleNumber != "pz333m" {
		t.Fatalf("merge clobbered untouched fields: %+v", got)
	}
	if saved == nil || saved.ID != "cl-1" {
		t.Fatalf("Save not called with the stored record")
	}
	if !saved.SubmissionDate.Equal(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("submission date must not change on update")
	}
}

func TestUpdate_NoInspectionTouchKeepsStatus(t *testing.T) {
	uc := newUsecase(&mockRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Checklist, error) {
			c := storedAllPassed()
			c.Tires = false
			c.OverallStatus = domain.OverallNeedsAttention
			return c, nil
		},
		SaveFn: func(ctx context.Context, c *domain.Checklist) error { return nil },
	})

	got, err := uc.Update(context.Background(), "cl-1", UpdateInput{Notes: strPtr("wiper fluid topped up")})
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if got.Notes != "wiper fluid topped up" {
		t.Fatalf("notes = %q", got.Notes)
	}
	if got.OverallStatus != domain.OverallNeedsAttention {
		t.Fatalf("overallStatus recomputed on a notes-only update")
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	uc := newUsecase(&mockRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Checklist, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})
	_, err := uc.Update(context.Background(), "missing", UpdateInput{Tires: boolPtr(true)})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// ----- dashboard -----

func TestDashboard_ComplianceRate(t *testing.T) {
	fixed := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC) // June: 30 days
	var gotStart, gotEnd time.Time
	uc := newUsecase(&mockRepo{
		ListInRangeFn: func(ctx context.Context, start, end time.Time) ([]domain.Checklist, error) {
			gotStart, gotEnd = start, end
			return make([]domain.Checklist, 10), nil
		},
		ListRecentFn: func(ctx context.Context, limit int) ([]domain.Checklist, error) {
			if limit != 5 {
				t.Fatalf("recent limit = %d, want 5", limit)
			}
			return []domain.Checklist{{ID: "a"}}, nil
		},
	})
	uc.now = func() time.Time { return fixed }

	dto, err := uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard err: %v", err)
	}
	if dto.MonthlyCount != 10 || dto.DaysInMonth != 30 {
		t.Fatalf("count/days = %d/%d, want 10/30", dto.MonthlyCount, dto.DaysInMonth)
	}
	if dto.ComplianceRate != 33 {
		t.Fatalf("complianceRate = %d, want 33", dto.ComplianceRate)
	}
	if len(dto.RecentSubmissions) != 1 {
		t.Fatalf("recent = %d, want 1", len(dto.RecentSubmissions))
	}

	wantStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !gotStart.Equal(wantStart) || !gotEnd.Equal(wantStart.AddDate(0, 1, 0)) {
		t.Fatalf("month window = [%v, %v)", gotStart, gotEnd)
	}
}

func TestDashboard_RateIsNotClamped(t *testing.T) {
	fixed := time.Date(2025, 2, 10, 10, 0, 0, 0, time.UTC) // Feb 2025: 28 days
	uc := newUsecase(&mockRepo{
		ListInRangeFn: func(ctx context.Context, start, end time.Time) ([]domain.Checklist, error) {
			return make([]domain.Checklist, 56), nil
		},
		ListRecentFn: func(ctx context.Context, limit int) ([]domain.Checklist, error) {
			return nil, nil
		},
	})
	uc.now = func() time.Time { return fixed }

	dto, err := uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard err: %v", err)
	}
	if dto.ComplianceRate != 200 {
		t.Fatalf("complianceRate = %d, want 200 (unclamped)", dto.ComplianceRate)
	}
}
