package mysql

import (
	"context"
	"errors"
	"time"

	checklistDomain "fleet-checklist-backend/internal/domain/checklist"
	"fleet-checklist-backend/pkg/id"

	"gorm.io/gorm"
)

type ChecklistRepository struct{ db *gorm.DB }

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository { return &ChecklistRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *ChecklistRepository) Tx(ctx context.Context, fn func(repo checklistDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ChecklistRepository{db: tx})
	})
}

// dedupKey scopes the per-vehicle-per-day uniqueness rule to non-draft rows:
// drafts key on their own id and never collide.
func dedupKey(c *checklistDomain.Checklist) string {
	if c.Status == checklistDomain.StatusDraft {
		return c.ID
	}
	return c.VehicleNumber + "|" + c.SubmissionDate.Format("2006-01-02")
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return checklistDomain.ErrDuplicateSubmission
	}
	return err
}

func (r *ChecklistRepository) Create(ctx context.Context, c *checklistDomain.Checklist) error {
	if c.ID == "" {
		c.ID = id.NewID()
	}
	c.SubmissionDate = time.Now()
	c.DedupKey = dedupKey(c)
	return translateErr(r.db.WithContext(ctx).Create(c).Error)
}

func (r *ChecklistRepository) Save(ctx context.Context, c *checklistDomain.Checklist) error {
	// status or vehicle may have changed; the key follows them
	c.DedupKey = dedupKey(c)
	return translateErr(r.db.WithContext(ctx).Save(c).Error)
}

func (r *ChecklistRepository) GetByID(ctx context.Context, checklistID string) (*checklistDomain.Checklist, error) {
	var out checklistDomain.Checklist
	res := r.db.WithContext(ctx).Where("id = ?", checklistID).First(&out)
	return &out, res.Error
}

func (r *ChecklistRepository) ListRecent(ctx context.Context, limit int) ([]checklistDomain.Checklist, error) {
	var out []checklistDomain.Checklist
	res := r.db.WithContext(ctx).
		Order("submission_date DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *ChecklistRepository) GetTodayForVehicle(ctx context.Context, vehicleNumber string, start, end time.Time) (*checklistDomain.Checklist, error) {
	var out checklistDomain.Checklist
	res := r.db.WithContext(ctx).
		Where("vehicle_number = ? AND submission_date >= ? AND submission_date < ?", vehicleNumber, start, end).
		Order("submission_date DESC").
		First(&out)
	return &out, res.Error
}

func (r *ChecklistRepository) ListInRange(ctx context.Context, start, end time.Time) ([]checklistDomain.Checklist, error) {
	var out []checklistDomain.Checklist
	res := r.db.WithContext(ctx).
		Where("submission_date >= ? AND submission_date < ?", start, end).
		Order("submission_date DESC").
		Find(&out)
	return out, res.Error
}
