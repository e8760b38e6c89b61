package command

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

// UpdateRefuelingCommand represents the command to edit a refueling.
// Nil fields are left unchanged. Status and reference are not editable here.
type UpdateRefuelingCommand struct {
	ID           uint
	Equipment    *string
	RefueledAt   *time.Time
	MeterReading *decimal.Decimal
	Liters       *decimal.Decimal
	UnitPrice    *decimal.Decimal
	TankID       *uint
	Driver       *string
	Note         *string
}

// UpdateRefuelingHandler handles update refueling command
type UpdateRefuelingHandler struct {
	repo     domain.Repository
	notifier *Notifier
}

// NewUpdateRefuelingHandler creates a new update refueling handler
func NewUpdateRefuelingHandler(repo domain.Repository, notifier *Notifier) *UpdateRefuelingHandler {
	return &UpdateRefuelingHandler{repo: repo, notifier: notifier}
}

// Handle executes the update refueling command. Editing a confirmed
// refueling re-runs the ledger of its previous and current tank.
func (h *UpdateRefuelingHandler) Handle(ctx context.Context, cmd UpdateRefuelingCommand) (*domain.Refueling, error) {
	var (
		updated  *domain.Refueling
		previous uint
	)

	err := h.repo.WithinTx(ctx, func(tx domain.Repository) error {
		refueling, err := tx.LockRefueling(ctx, cmd.ID)
		if err != nil {
			return err
		}
		previous = refueling.TankID

		if cmd.Equipment != nil {
			refueling.Equipment = strings.TrimSpace(*cmd.Equipment)
		}
		if cmd.RefueledAt != nil {
			refueling.RefueledAt = *cmd.RefueledAt
		}
		if cmd.MeterReading != nil {
			refueling.MeterReading = *cmd.MeterReading
		}
		if cmd.Liters != nil {
			refueling.Liters = *cmd.Liters
		}
		if cmd.UnitPrice != nil {
			refueling.UnitPrice = *cmd.UnitPrice
		}
		if cmd.Driver != nil {
			refueling.Driver = strings.TrimSpace(*cmd.Driver)
		}
		if cmd.Note != nil {
			refueling.Note = *cmd.Note
		}
		if cmd.TankID != nil && *cmd.TankID != refueling.TankID {
			refueling.TankID = *cmd.TankID
			if refueling.TankID != 0 {
				if _, err := tx.FindTank(ctx, refueling.TankID); err != nil {
					return err
				}
			}
		}

		refueling.ComputeTotal()
		if err := refueling.Validate(); err != nil {
			return err
		}

		if err := tx.UpdateRefueling(ctx, refueling); err != nil {
			return err
		}
		updated = refueling
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status == domain.StatusConfirmed {
		h.notifier.TankChanged(ctx, "refueling.updated", previous, updated.TankID)
	}
	return updated, nil
}
