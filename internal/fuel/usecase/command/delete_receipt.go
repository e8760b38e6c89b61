package command

import (
	"context"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/pkg/logger"
)

// DeleteReceiptCommand represents the command to delete a receipt
type DeleteReceiptCommand struct {
	ID uint
}

// DeleteReceiptHandler handles delete receipt command
type DeleteReceiptHandler struct {
	repo     domain.Repository
	notifier *Notifier
}

// NewDeleteReceiptHandler creates a new delete receipt handler
func NewDeleteReceiptHandler(repo domain.Repository, notifier *Notifier) *DeleteReceiptHandler {
	return &DeleteReceiptHandler{repo: repo, notifier: notifier}
}

// Handle executes the delete receipt command. The deletion fails when the
// tank would be left with negative stock.
func (h *DeleteReceiptHandler) Handle(ctx context.Context, cmd DeleteReceiptCommand) error {
	receipt, err := h.repo.FindReceipt(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.DeleteReceipt(ctx, receipt.ID); err != nil {
		return err
	}

	logger.Info(ctx).Uint("receipt_id", receipt.ID).Uint("tank_id", receipt.TankID).Msg("Fuel receipt deleted")
	h.notifier.TankChanged(ctx, "receipt.deleted", receipt.TankID)
	return nil
}
