package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCapacity is used when a tank is created without an explicit capacity.
var DefaultCapacity = decimal.NewFromInt(6000)

var hundred = decimal.NewFromInt(100)

// Tank is a physical fuel store. CurrentStock and FillPercentage are
// materialized from the ledger and never written by callers.
type Tank struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:128;not null"`
	Capacity       decimal.Decimal `json:"capacity" gorm:"type:decimal(12,2);not null"`
	CurrentStock   decimal.Decimal `json:"current_stock" gorm:"type:decimal(12,2);not null"`
	FillPercentage decimal.Decimal `json:"fill_percentage" gorm:"type:decimal(7,2);not null"`
	Active         bool            `json:"active" gorm:"not null;index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Tank) TableName() string {
	return "fuel_tanks"
}

// Validate checks the operator-editable fields.
func (t *Tank) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return required("name")
	}
	if !t.Capacity.IsPositive() {
		return mustBePositive("capacity")
	}
	return nil
}

// ApplyLedger derives stock and fill level from the summed ledger sides.
func (t *Tank) ApplyLedger(received, withdrawn decimal.Decimal) {
	t.CurrentStock = received.Sub(withdrawn)
	t.FillPercentage = FillPercentage(t.CurrentStock, t.Capacity)
}

// CheckBounds enforces 0 <= stock <= capacity.
func (t *Tank) CheckBounds() error {
	if t.CurrentStock.IsNegative() || t.CurrentStock.GreaterThan(t.Capacity) {
		return &BoundsError{Tank: t.Name, Stock: t.CurrentStock, Capacity: t.Capacity}
	}
	return nil
}

// FillPercentage returns stock/capacity*100 rounded to two places, or zero
// when the capacity is not positive.
func FillPercentage(stock, capacity decimal.Decimal) decimal.Decimal {
	if !capacity.IsPositive() {
		return decimal.Zero
	}
	return stock.Div(capacity).Mul(hundred).Round(2)
}

// TankFilter narrows tank listings. A nil Active lists archived tanks too.
type TankFilter struct {
	Active *bool
	Limit  int
	Offset int
}
