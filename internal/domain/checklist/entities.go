package checklist

import (
	"errors"
	"time"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusDraft     Status = "draft"
)

type OverallStatus string

const (
	OverallAllPassed      OverallStatus = "all_passed"
	OverallNeedsAttention OverallStatus = "needs_attention"
)

var (
	ErrNotFound = errors.New("checklist not found")
	// ErrDuplicateSubmission: a non-draft checklist already exists for the
	// vehicle on the same calendar day.
	ErrDuplicateSubmission = errors.New("duplicate checklist submission for vehicle today")
)

// Inspection is the set of seven pass/fail items (true = pass).
type Inspection struct {
	ParkingBrake       bool
	FluidLevels        bool
	Tires              bool
	EngineFluids       bool
	Lights             bool
	DoorsAndSeatbelts  bool
	EmergencyEquipment bool
}

// AllPassed reports whether every item passed.
func (i Inspection) AllPassed() bool {
	return i.ParkingBrake && i.FluidLevels && i.Tires && i.EngineFluids &&
		i.Lights && i.DoorsAndSeatbelts && i.EmergencyEquipment
}

// DeriveOverallStatus maps an inspection result set to the aggregate status.
// Never client-supplied: recomputed on every create and on every update that
// touches an inspection item.
func DeriveOverallStatus(i Inspection) OverallStatus {
	if i.AllPassed() {
		return OverallAllPassed
	}
	return OverallNeedsAttention
}

type Checklist struct {
	// UUID assigned by the persistence layer at creation; immutable.
	ID            string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	VehicleNumber string    `gorm:"column:vehicle_number;size:64;not null;index:idx_checklists_vehicle" json:"vehicleNumber"`
	// Server-set at creation; never changes afterwards.
	SubmissionDate time.Time `gorm:"column:submission_date;index:idx_checklists_submission_date" json:"submissionDate"`

	ParkingBrake       bool `gorm:"column:parking_brake;not null" json:"parkingBrake"`
	FluidLevels        bool `gorm:"column:fluid_levels;not null" json:"fluidLevels"`
	Tires              bool `gorm:"column:tires;not null" json:"tires"`
	EngineFluids       bool `gorm:"column:engine_fluids;not null" json:"engineFluids"`
	Lights             bool `gorm:"column:lights;not null" json:"lights"`
	DoorsAndSeatbelts  bool `gorm:"column:doors_and_seatbelts;not null" json:"doorsAndSeatbelts"`
	EmergencyEquipment bool `gorm:"column:emergency_equipment;not null" json:"emergencyEquipment"`

	Notes string `gorm:"column:notes;type:text" json:"notes"`

	Status        Status        `gorm:"column:status;size:16;not null;default:'completed'" json:"status"`
	OverallStatus OverallStatus `gorm:"column:overall_status;size:24;not null" json:"overallStatus"`

	// Storage-level duplicate guard: "<vehicle>|<yyyy-mm-dd>" for non-draft
	// rows, the record id for drafts. Maintained by the repository.
	DedupKey string `gorm:"column:dedup_key;size:120;uniqueIndex:ux_checklists_dedup" json:"-"`
}

func (Checklist) TableName() string { return "checklists" }

// Inspection extracts the seven items from the record.
func (c *Checklist) Inspection() Inspection {
	return Inspection{
		ParkingBrake:       c.ParkingBrake,
		FluidLevels:        c.FluidLevels,
		Tires:              c.Tires,
		EngineFluids:       c.EngineFluids,
		Lights:             c.Lights,
		DoorsAndSeatbelts:  c.DoorsAndSeatbelts,
		EmergencyEquipment: c.EmergencyEquipment,
	}
}
