package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

// UpdateTankCommand represents the command to rename or resize a tank.
// Nil fields are left unchanged.
type UpdateTankCommand struct {
	ID       uint
	Name     *string
	Capacity *decimal.Decimal
}

// UpdateTankHandler handles update tank command
type UpdateTankHandler struct {
	repo     domain.Repository
	notifier *Notifier
}

// NewUpdateTankHandler creates a new update tank handler
func NewUpdateTankHandler(repo domain.Repository, notifier *Notifier) *UpdateTankHandler {
	return &UpdateTankHandler{repo: repo, notifier: notifier}
}

// Handle executes the update tank command. A capacity change re-runs the
// ledger and fails when the current stock no longer fits.
func (h *UpdateTankHandler) Handle(ctx context.Context, cmd UpdateTankCommand) (*domain.Tank, error) {
	tank, err := h.repo.FindTank(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		tank.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Capacity != nil {
		tank.Capacity = *cmd.Capacity
	}
	if err := tank.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.UpdateTank(ctx, tank); err != nil {
		return nil, fmt.Errorf("failed to update tank: %w", err)
	}

	h.notifier.TankChanged(ctx, "tank.updated", tank.ID)
	return h.repo.FindTank(ctx, tank.ID)
}
