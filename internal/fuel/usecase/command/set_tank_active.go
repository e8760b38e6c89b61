package command

import (
	"context"
	"fmt"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/pkg/logger"
)

// SetTankActiveCommand represents the command to archive or unarchive a tank
type SetTankActiveCommand struct {
	ID     uint
	Active bool
}

// SetTankActiveHandler handles archive toggle command
type SetTankActiveHandler struct {
	repo domain.Repository
}

// NewSetTankActiveHandler creates a new set tank active handler
func NewSetTankActiveHandler(repo domain.Repository) *SetTankActiveHandler {
	return &SetTankActiveHandler{repo: repo}
}

// Handle executes the set tank active command
func (h *SetTankActiveHandler) Handle(ctx context.Context, cmd SetTankActiveCommand) (*domain.Tank, error) {
	tank, err := h.repo.FindTank(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	tank.Active = cmd.Active
	if err := h.repo.UpdateTank(ctx, tank); err != nil {
		return nil, fmt.Errorf("failed to update tank status: %w", err)
	}

	logger.Info(ctx).Uint("tank_id", tank.ID).Bool("active", tank.Active).Msg("Tank status changed")
	return h.repo.FindTank(ctx, tank.ID)
}
