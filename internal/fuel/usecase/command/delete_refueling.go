package command

import (
	"context"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/pkg/logger"
)

// DeleteRefuelingCommand represents the command to delete a refueling
type DeleteRefuelingCommand struct {
	ID uint
}

// DeleteRefuelingHandler handles delete refueling command
type DeleteRefuelingHandler struct {
	repo     domain.Repository
	notifier *Notifier
}

// NewDeleteRefuelingHandler creates a new delete refueling handler
func NewDeleteRefuelingHandler(repo domain.Repository, notifier *Notifier) *DeleteRefuelingHandler {
	return &DeleteRefuelingHandler{repo: repo, notifier: notifier}
}

// Handle executes the delete refueling command
func (h *DeleteRefuelingHandler) Handle(ctx context.Context, cmd DeleteRefuelingCommand) error {
	refueling, err := h.repo.FindRefueling(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.DeleteRefueling(ctx, refueling.ID); err != nil {
		return err
	}

	logger.Info(ctx).
		Uint("refueling_id", refueling.ID).
		Str("status", string(refueling.Status)).
		Msg("Refueling deleted")
	if refueling.Status == domain.StatusConfirmed {
		h.notifier.TankChanged(ctx, "refueling.deleted", refueling.TankID)
	}
	return nil
}
