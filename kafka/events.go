package kafka

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/receiving"
)

// ReceivingLine is one product line of a validated receiving document
type ReceivingLine struct {
	Product  string          `json:"product"`
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceivingValidatedEvent is published by the purchasing service once a
// receiving document has been validated
type ReceivingValidatedEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Document  string          `json:"document"`
	Kind      string          `json:"kind"`
	Operator  string          `json:"operator"`
	Lines     []ReceivingLine `json:"lines"`
	Timestamp time.Time       `json:"timestamp"`
}

// Event converts the wire event into the receiving integration's event.
func (e ReceivingValidatedEvent) Event() receiving.Event {
	lines := make([]receiving.Line, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, receiving.Line{Product: l.Product, Category: l.Category, Quantity: l.Quantity})
	}
	return receiving.Event{
		EventID:     e.EventID,
		Document:    e.Document,
		Kind:        e.Kind,
		Operator:    e.Operator,
		Lines:       lines,
		ValidatedAt: e.Timestamp,
	}
}

// TankStockChangedEvent is published after a committed change of a tank's stock
type TankStockChangedEvent struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	domain.StockChangedEvent
}

// Event types
const (
	EventTypeReceivingValidated = "receiving.validated"
	EventTypeTankStockChanged   = "tank.stock_changed"
)

// Kafka topics
const (
	TopicReceivingValidated = "receiving-validated"
	TopicTankStock          = "fuel-tank-stock"
)
