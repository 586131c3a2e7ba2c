package checklist

import (
	"context"
	"time"
)

type Repository interface {
	// Create assigns identity and submission timestamp, then persists.
	Create(ctx context.Context, c *Checklist) error
	GetByID(ctx context.Context, id string) (*Checklist, error)
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]Checklist, error)
	// GetTodayForVehicle returns the newest record for the vehicle whose
	// submission date falls in the half-open window [start, end).
	GetTodayForVehicle(ctx context.Context, vehicleNumber string, start, end time.Time) (*Checklist, error)
	// ListInRange returns records with submission date in [start, end), newest first.
	ListInRange(ctx context.Context, start, end time.Time) ([]Checklist, error)
	Save(ctx context.Context, c *Checklist) error
}
