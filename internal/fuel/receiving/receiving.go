// Package receiving connects the fuel ledger to the host's receiving workflow.
//
// The host calls Dispatcher.Validated after one of its receiving documents
// has been validated. Subscribers run after the host committed its own work
// and are not part of that transaction.
package receiving

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// KindIncoming marks documents that bring goods in.
const KindIncoming = "incoming"

// Line is one product line of a receiving document.
type Line struct {
	Product  string          `json:"product"`
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Event describes a validated receiving document. EventID is optional;
// when present it makes delivery idempotent.
type Event struct {
	EventID     string    `json:"event_id,omitempty"`
	Document    string    `json:"document"`
	Kind        string    `json:"kind"`
	Operator    string    `json:"operator"`
	Lines       []Line    `json:"lines"`
	ValidatedAt time.Time `json:"validated_at"`
}

// Subscriber reacts to validated receiving documents.
type Subscriber interface {
	ReceivingValidated(ctx context.Context, event Event) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(ctx context.Context, event Event) error

func (f SubscriberFunc) ReceivingValidated(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Dispatcher fans validated events out to subscribers in registration order.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewDispatcher creates a dispatcher with the given subscribers.
func NewDispatcher(subscribers ...Subscriber) *Dispatcher {
	return &Dispatcher{subscribers: subscribers}
}

// Subscribe appends s to the subscriber list.
func (d *Dispatcher) Subscribe(s Subscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, s)
}

// Validated runs every subscriber and stops at the first error.
func (d *Dispatcher) Validated(ctx context.Context, event Event) error {
	d.mu.RLock()
	subscribers := append([]Subscriber(nil), d.subscribers...)
	d.mu.RUnlock()

	for i, s := range subscribers {
		if err := s.ReceivingValidated(ctx, event); err != nil {
			return fmt.Errorf("receiving subscriber %d failed for %s: %w", i, event.Document, err)
		}
	}
	return nil
}
