package command

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/metrics"
	"github.com/tair/fuel-control/pkg/logger"
)

// CreateReceiptCommand represents the command to record fuel delivered
// into a tank
type CreateReceiptCommand struct {
	TankID     uint
	ReceivedAt time.Time // zero means now
	Liters     decimal.Decimal
	Reference  string
	RecordedBy string
	Note       string
	Source     string // zero means domain.SourceManual
}

// BuildReceipt validates cmd and turns it into a receipt row.
func BuildReceipt(cmd CreateReceiptCommand) (*domain.Receipt, error) {
	receipt := &domain.Receipt{
		TankID:     cmd.TankID,
		ReceivedAt: cmd.ReceivedAt,
		Liters:     cmd.Liters,
		Reference:  strings.TrimSpace(cmd.Reference),
		Source:     cmd.Source,
		RecordedBy: strings.TrimSpace(cmd.RecordedBy),
		Note:       cmd.Note,
	}
	if receipt.ReceivedAt.IsZero() {
		receipt.ReceivedAt = time.Now().UTC()
	}
	if receipt.Source == "" {
		receipt.Source = domain.SourceManual
	}

	if err := receipt.Validate(); err != nil {
		return nil, err
	}
	return receipt, nil
}

// CreateReceiptHandler handles create receipt command. It is the single
// intake path for both operators and the receiving integration.
type CreateReceiptHandler struct {
	repo     domain.Repository
	notifier *Notifier
}

// NewCreateReceiptHandler creates a new create receipt handler
func NewCreateReceiptHandler(repo domain.Repository, notifier *Notifier) *CreateReceiptHandler {
	return &CreateReceiptHandler{repo: repo, notifier: notifier}
}

// Handle executes the create receipt command
func (h *CreateReceiptHandler) Handle(ctx context.Context, cmd CreateReceiptCommand) (*domain.Receipt, error) {
	receipt, err := h.Create(ctx, h.repo, cmd)
	if err != nil {
		return nil, err
	}

	metrics.ReceiptsCreatedTotal.WithLabelValues(receipt.Source).Inc()
	h.notifier.TankChanged(ctx, "receipt.created", receipt.TankID)
	return receipt, nil
}

// Create stores the receipt through repo, which may be bound to a caller's
// transaction. The caller notifies once its transaction commits.
func (h *CreateReceiptHandler) Create(ctx context.Context, repo domain.Repository, cmd CreateReceiptCommand) (*domain.Receipt, error) {
	receipt, err := BuildReceipt(cmd)
	if err != nil {
		return nil, err
	}

	if _, err := repo.FindTank(ctx, receipt.TankID); err != nil {
		return nil, err
	}

	if err := repo.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("receipt_id", receipt.ID).
		Uint("tank_id", receipt.TankID).
		Str("liters", receipt.Liters.String()).
		Str("source", receipt.Source).
		Str("recorded_by", receipt.RecordedBy).
		Msg("Fuel receipt recorded")
	return receipt, nil
}
