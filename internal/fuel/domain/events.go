package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Sequence holds the next value of a named counter.
type Sequence struct {
	Code      string    `gorm:"primaryKey;size:64"`
	NextValue int64     `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name
func (Sequence) TableName() string {
	return "fuel_sequences"
}

// ReceivingEventRecord remembers a processed receiving event so redeliveries
// are skipped.
type ReceivingEventRecord struct {
	ID          uint           `gorm:"primaryKey"`
	EventID     string         `gorm:"size:64;not null;uniqueIndex"`
	Document    string         `gorm:"size:255;not null"`
	Payload     datatypes.JSON `gorm:"not null"`
	ProcessedAt time.Time      `gorm:"not null"`
}

// TableName specifies the table name
func (ReceivingEventRecord) TableName() string {
	return "fuel_receiving_events"
}

// StockChangedEvent is emitted after a committed change of a tank's stock.
type StockChangedEvent struct {
	TankID         uint            `json:"tank_id"`
	TankName       string          `json:"tank_name"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	Capacity       decimal.Decimal `json:"capacity"`
	FillPercentage decimal.Decimal `json:"fill_percentage"`
	Cause          string          `json:"cause"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// NewStockChangedEvent snapshots tank for cause.
func NewStockChangedEvent(tank *Tank, cause string) StockChangedEvent {
	return StockChangedEvent{
		TankID:         tank.ID,
		TankName:       tank.Name,
		CurrentStock:   tank.CurrentStock,
		Capacity:       tank.Capacity,
		FillPercentage: tank.FillPercentage,
		Cause:          cause,
		OccurredAt:     time.Now().UTC(),
	}
}

// EventPublisher delivers stock change notifications to the outside world.
type EventPublisher interface {
	PublishStockChanged(ctx context.Context, event StockChangedEvent) error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishStockChanged(context.Context, StockChangedEvent) error {
	return nil
}
