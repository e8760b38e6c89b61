package receiving

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/metrics"
	"github.com/tair/fuel-control/internal/fuel/usecase/command"
	"github.com/tair/fuel-control/pkg/logger"
)

// DefaultFuelCategory is the product category whose lines become receipts.
const DefaultFuelCategory = "Fuel"

// fallbackOperator records receipts of events that carry no operator.
const fallbackOperator = "system"

// Settings configures the fuel intake.
type Settings struct {
	FuelCategory string
}

// FuelIntake turns the fuel lines of incoming documents into receipts on the
// default active tank.
type FuelIntake struct {
	repo     domain.Repository
	receipts *command.CreateReceiptHandler
	notifier *command.Notifier
	category string
}

// NewFuelIntake creates a new fuel intake subscriber
func NewFuelIntake(repo domain.Repository, receipts *command.CreateReceiptHandler, notifier *command.Notifier, settings Settings) *FuelIntake {
	category := strings.TrimSpace(settings.FuelCategory)
	if category == "" {
		category = DefaultFuelCategory
	}
	return &FuelIntake{repo: repo, receipts: receipts, notifier: notifier, category: category}
}

// ReceivingValidated creates one receipt per fuel line, all in one
// transaction. Documents that are not incoming are ignored. When no tank is
// active the lines are dropped: the drop is logged and counted but not
// reported as an error.
func (f *FuelIntake) ReceivingValidated(ctx context.Context, event Event) error {
	if event.Kind != KindIncoming {
		return nil
	}

	lines := f.fuelLines(event)
	if len(lines) == 0 {
		return nil
	}

	operator := strings.TrimSpace(event.Operator)
	if operator == "" {
		operator = fallbackOperator
	}

	var created []*domain.Receipt
	err := f.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if event.EventID != "" {
			fresh, err := f.record(ctx, tx, event)
			if err != nil {
				return err
			}
			if !fresh {
				logger.Info(ctx).
					Str("event_id", event.EventID).
					Str("document", event.Document).
					Msg("Receiving event already processed")
				return nil
			}
		}

		tank, err := tx.FirstActiveTank(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ReceivingLinesDroppedTotal.Add(float64(len(lines)))
			logger.Warn(ctx).
				Str("document", event.Document).
				Int("lines", len(lines)).
				Msg("No active tank, fuel lines dropped")
			return nil
		}
		if err != nil {
			return err
		}

		for _, line := range lines {
			receipt, err := f.receipts.Create(ctx, tx, command.CreateReceiptCommand{
				TankID:     tank.ID,
				ReceivedAt: event.ValidatedAt,
				Liters:     line.Quantity,
				Reference:  domain.ReceivingReferencePrefix + event.Document,
				RecordedBy: operator,
				Source:     domain.SourceReceiving,
			})
			if err != nil {
				return fmt.Errorf("failed to receive %s line %q: %w", event.Document, line.Product, err)
			}
			created = append(created, receipt)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, receipt := range created {
		metrics.ReceiptsCreatedTotal.WithLabelValues(receipt.Source).Inc()
	}
	if len(created) > 0 {
		f.notifier.TankChanged(ctx, "receipt.created", created[0].TankID)
	}
	return nil
}

func (f *FuelIntake) fuelLines(event Event) []Line {
	var lines []Line
	for _, line := range event.Lines {
		if strings.TrimSpace(line.Category) == f.category {
			lines = append(lines, line)
		}
	}
	return lines
}

func (f *FuelIntake) record(ctx context.Context, tx domain.Repository, event Event) (bool, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("failed to encode receiving event: %w", err)
	}

	return tx.RecordReceivingEvent(ctx, &domain.ReceivingEventRecord{
		EventID:     event.EventID,
		Document:    event.Document,
		Payload:     datatypes.JSON(payload),
		ProcessedAt: time.Now().UTC(),
	})
}

var _ Subscriber = (*FuelIntake)(nil)
