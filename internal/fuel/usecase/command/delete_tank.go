package command

import (
	"context"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/metrics"
	"github.com/tair/fuel-control/pkg/logger"
)

// DeleteTankCommand represents the command to delete a tank
type DeleteTankCommand struct {
	ID uint
}

// DeleteTankHandler handles delete tank command
type DeleteTankHandler struct {
	repo domain.Repository
}

// NewDeleteTankHandler creates a new delete tank handler
func NewDeleteTankHandler(repo domain.Repository) *DeleteTankHandler {
	return &DeleteTankHandler{repo: repo}
}

// Handle executes the delete tank command. Tanks with ledger rows cannot be
// deleted; archive them instead.
func (h *DeleteTankHandler) Handle(ctx context.Context, cmd DeleteTankCommand) error {
	tank, err := h.repo.FindTank(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.DeleteTank(ctx, tank.ID); err != nil {
		return err
	}

	metrics.ForgetTank(tank.ID, tank.Name)
	logger.Info(ctx).Uint("tank_id", tank.ID).Str("name", tank.Name).Msg("Tank deleted")
	return nil
}
