package command

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/pkg/logger"
)

// CreateRefuelingCommand represents the command to record a refueling draft
type CreateRefuelingCommand struct {
	Equipment    string
	RefueledAt   time.Time // zero means now
	MeterReading decimal.Decimal
	Liters       decimal.Decimal
	UnitPrice    decimal.Decimal
	TankID       uint
	RecordedBy   string
	Driver       string
	Note         string
}

// CreateRefuelingHandler handles create refueling command
type CreateRefuelingHandler struct {
	repo domain.Repository
}

// NewCreateRefuelingHandler creates a new create refueling handler
func NewCreateRefuelingHandler(repo domain.Repository) *CreateRefuelingHandler {
	return &CreateRefuelingHandler{repo: repo}
}

// Handle executes the create refueling command. New refuelings are drafts
// and leave the tank stock untouched until confirmed.
func (h *CreateRefuelingHandler) Handle(ctx context.Context, cmd CreateRefuelingCommand) (*domain.Refueling, error) {
	refueling := &domain.Refueling{
		Equipment:    strings.TrimSpace(cmd.Equipment),
		RefueledAt:   cmd.RefueledAt,
		MeterReading: cmd.MeterReading,
		Liters:       cmd.Liters,
		UnitPrice:    cmd.UnitPrice,
		TankID:       cmd.TankID,
		RecordedBy:   strings.TrimSpace(cmd.RecordedBy),
		Driver:       strings.TrimSpace(cmd.Driver),
		Status:       domain.StatusDraft,
		Note:         cmd.Note,
	}
	if refueling.RefueledAt.IsZero() {
		refueling.RefueledAt = time.Now().UTC()
	}
	refueling.ComputeTotal()

	if err := refueling.Validate(); err != nil {
		return nil, err
	}
	if _, err := h.repo.FindTank(ctx, refueling.TankID); err != nil {
		return nil, err
	}

	if err := h.repo.CreateRefueling(ctx, refueling); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("refueling_id", refueling.ID).
		Str("equipment", refueling.Equipment).
		Str("liters", refueling.Liters.String()).
		Str("total", refueling.Total.String()).
		Msg("Refueling draft recorded")
	return refueling, nil
}
