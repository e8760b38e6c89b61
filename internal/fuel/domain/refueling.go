package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a refueling.
type Status string

// Refueling statuses
const (
	StatusDraft     Status = "draft"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// RefuelingSequenceCode names the sequence that numbers confirmed refuelings.
const RefuelingSequenceCode = "fuel.refueling"

// Refueling is fuel drawn from a tank into a vehicle or piece of equipment.
// Only confirmed refuelings reduce the tank's stock.
type Refueling struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Reference    string          `json:"reference,omitempty" gorm:"size:32;index"`
	Equipment    string          `json:"equipment" gorm:"size:128;not null;index"`
	RefueledAt   time.Time       `json:"refueled_at" gorm:"not null;index"`
	MeterReading decimal.Decimal `json:"meter_reading" gorm:"type:decimal(10,1);not null"`
	Liters       decimal.Decimal `json:"liters" gorm:"type:decimal(10,2);not null"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,4);not null"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	TankID       uint            `json:"tank_id" gorm:"not null;index"`
	Tank         *Tank           `json:"-" gorm:"foreignKey:TankID;constraint:OnDelete:RESTRICT"`
	RecordedBy   string          `json:"recorded_by" gorm:"size:64;not null"`
	Driver       string          `json:"driver,omitempty" gorm:"size:128"`
	Status       Status          `json:"status" gorm:"size:16;not null;index"`
	Note         string          `json:"note,omitempty" gorm:"type:text"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Refueling) TableName() string {
	return "fuel_refuelings"
}

// ComputeTotal sets Total to liters x unit price rounded to cents.
func (r *Refueling) ComputeTotal() {
	r.Total = r.Liters.Mul(r.UnitPrice).Round(2)
}

// Validate checks the field invariants enforced on every write.
func (r *Refueling) Validate() error {
	if strings.TrimSpace(r.Equipment) == "" {
		return required("equipment")
	}
	if r.TankID == 0 {
		return required("tank_id")
	}
	if strings.TrimSpace(r.RecordedBy) == "" {
		return required("recorded_by")
	}
	if !r.Liters.IsPositive() {
		return mustBePositive("liters")
	}
	if !r.UnitPrice.IsPositive() {
		return mustBePositive("unit_price")
	}
	if r.MeterReading.IsNegative() {
		return &FieldError{Field: "meter_reading", Message: "cannot be negative"}
	}
	if !r.Status.Valid() {
		return &FieldError{Field: "status", Message: "is unknown: " + string(r.Status)}
	}
	return nil
}

// BeforeSave rounds the inputs to their stored precision and derives Total,
// so no write path can persist a stale or hand-edited total.
func (r *Refueling) BeforeSave(tx *gorm.DB) error {
	r.Liters = r.Liters.Round(2)
	r.UnitPrice = r.UnitPrice.Round(4)
	r.MeterReading = r.MeterReading.Round(1)
	r.ComputeTotal()
	return r.Validate()
}

func (r *Refueling) transitionContext() TransitionContext {
	return TransitionContext{RefuelingID: r.ID, CurrentStatus: r.Status}
}

// Confirm moves a draft to confirmed. The reference is drawn from
// nextReference only the first time a refueling is confirmed.
func (r *Refueling) Confirm(nextReference func() (string, error)) error {
	if err := CanConfirm(r.transitionContext()).Err(r.Status, StatusConfirmed); err != nil {
		return err
	}
	if r.Reference == "" {
		ref, err := nextReference()
		if err != nil {
			return err
		}
		r.Reference = ref
	}
	r.Status = StatusConfirmed
	return nil
}

// Cancel moves a confirmed refueling to cancelled.
func (r *Refueling) Cancel() error {
	if err := CanCancel(r.transitionContext()).Err(r.Status, StatusCancelled); err != nil {
		return err
	}
	r.Status = StatusCancelled
	return nil
}

// ResetToDraft moves a cancelled refueling back to draft, keeping its reference.
func (r *Refueling) ResetToDraft() error {
	if err := CanResetToDraft(r.transitionContext()).Err(r.Status, StatusDraft); err != nil {
		return err
	}
	r.Status = StatusDraft
	return nil
}

// RefuelingFilter narrows refueling listings.
type RefuelingFilter struct {
	TankID    uint
	Status    Status
	Equipment string
	Limit     int
	Offset    int
}
