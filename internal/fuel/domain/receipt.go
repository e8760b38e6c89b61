package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt sources
const (
	SourceManual    = "manual"
	SourceReceiving = "receiving"
)

// ReceivingReferencePrefix prefixes the reference of receipts created from a
// validated receiving document.
const ReceivingReferencePrefix = "Purchase: "

// Receipt records fuel delivered into a tank. It has no lifecycle: once
// stored it counts toward the tank's stock until deleted.
type Receipt struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	TankID     uint            `json:"tank_id" gorm:"not null;index"`
	Tank       *Tank           `json:"-" gorm:"foreignKey:TankID;constraint:OnDelete:RESTRICT"`
	ReceivedAt time.Time       `json:"received_at" gorm:"not null;index"`
	Liters     decimal.Decimal `json:"liters" gorm:"type:decimal(10,2);not null"`
	Reference  string          `json:"reference,omitempty" gorm:"size:255;index"`
	Source     string          `json:"source" gorm:"size:16;not null"`
	RecordedBy string          `json:"recorded_by" gorm:"size:64;not null"`
	Note       string          `json:"note,omitempty" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (Receipt) TableName() string {
	return "fuel_receipts"
}

// Validate checks the receipt invariants.
func (r *Receipt) Validate() error {
	if r.TankID == 0 {
		return required("tank_id")
	}
	if !r.Liters.IsPositive() {
		return &FieldError{Field: "liters", Message: "of a receipt must be greater than zero"}
	}
	if strings.TrimSpace(r.RecordedBy) == "" {
		return required("recorded_by")
	}
	return nil
}

// BeforeSave keeps rows written through gorm valid even outside the usecases.
func (r *Receipt) BeforeSave(tx *gorm.DB) error {
	r.Liters = r.Liters.Round(2)
	return r.Validate()
}

// ReceiptFilter narrows receipt listings.
type ReceiptFilter struct {
	TankID    uint
	Reference string
	Limit     int
	Offset    int
}
