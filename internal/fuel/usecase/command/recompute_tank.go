package command

import (
	"context"
	"fmt"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/ledger"
	"github.com/tair/fuel-control/pkg/logger"
)

// RecomputeTankCommand resyncs the stored levels of one tank, or of every
// tank when All is set.
type RecomputeTankCommand struct {
	ID  uint
	All bool
}

// RecomputeTankHandler handles recompute tank command
type RecomputeTankHandler struct {
	repo     domain.Repository
	ledger   *ledger.Ledger
	notifier *Notifier
}

// NewRecomputeTankHandler creates a new recompute tank handler
func NewRecomputeTankHandler(repo domain.Repository, l *ledger.Ledger, notifier *Notifier) *RecomputeTankHandler {
	return &RecomputeTankHandler{repo: repo, ledger: l, notifier: notifier}
}

// Handle executes the recompute tank command. Each tank is recomputed in its
// own transaction; the first failure stops the run.
func (h *RecomputeTankHandler) Handle(ctx context.Context, cmd RecomputeTankCommand) ([]domain.Tank, error) {
	ids := []uint{cmd.ID}
	if cmd.All {
		tanks, err := h.repo.ListTanks(ctx, domain.TankFilter{})
		if err != nil {
			return nil, err
		}
		ids = ids[:0]
		for _, t := range tanks {
			ids = append(ids, t.ID)
		}
	} else if cmd.ID == 0 {
		return nil, &domain.FieldError{Field: "id", Message: "is required unless all tanks are recomputed"}
	}

	result := make([]domain.Tank, 0, len(ids))
	for _, id := range ids {
		var tank *domain.Tank
		err := h.repo.WithinTx(ctx, func(tx domain.Repository) error {
			var err error
			tank, err = h.ledger.Recompute(ctx, tx, id)
			return err
		})
		if err != nil {
			return result, fmt.Errorf("failed to recompute tank %d: %w", id, err)
		}

		result = append(result, *tank)
		h.notifier.TankChanged(ctx, "tank.recomputed", id)
	}

	logger.Info(ctx).Int("tanks", len(result)).Msg("Tank ledgers recomputed")
	return result, nil
}
