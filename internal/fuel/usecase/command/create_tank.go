package command

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/pkg/logger"
)

// CreateTankCommand represents the command to create a tank
type CreateTankCommand struct {
	Name     string
	Capacity decimal.Decimal // zero means domain.DefaultCapacity
}

// CreateTankHandler handles create tank command
type CreateTankHandler struct {
	repo     domain.Repository
	notifier *Notifier
}

// NewCreateTankHandler creates a new create tank handler
func NewCreateTankHandler(repo domain.Repository, notifier *Notifier) *CreateTankHandler {
	return &CreateTankHandler{repo: repo, notifier: notifier}
}

// Handle executes the create tank command
func (h *CreateTankHandler) Handle(ctx context.Context, cmd CreateTankCommand) (*domain.Tank, error) {
	capacity := cmd.Capacity
	if capacity.IsZero() {
		capacity = domain.DefaultCapacity
	}

	tank := &domain.Tank{
		Name:     strings.TrimSpace(cmd.Name),
		Capacity: capacity,
		Active:   true,
	}
	if err := tank.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.CreateTank(ctx, tank); err != nil {
		return nil, err
	}

	logger.Info(ctx).Uint("tank_id", tank.ID).Str("name", tank.Name).Msg("Tank created")
	h.notifier.TankChanged(ctx, "tank.created", tank.ID)
	return tank, nil
}
