package command

import (
	"context"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/metrics"
	"github.com/tair/fuel-control/pkg/logger"
)

// TransitionRefuelingCommand represents a status change of a refueling
type TransitionRefuelingCommand struct {
	ID       uint
	Operator string
}

type transitionFunc func(ctx context.Context, tx domain.Repository, refueling *domain.Refueling) error

// runTransition locks the refueling, applies the transition and saves it in
// one transaction, so the status change and the ledger recompute commit or
// roll back together.
func runTransition(ctx context.Context, repo domain.Repository, notifier *Notifier, cmd TransitionRefuelingCommand, to domain.Status, apply transitionFunc) (*domain.Refueling, error) {
	var (
		result *domain.Refueling
		from   domain.Status
	)

	err := repo.WithinTx(ctx, func(tx domain.Repository) error {
		refueling, err := tx.LockRefueling(ctx, cmd.ID)
		if err != nil {
			return err
		}
		from = refueling.Status

		if err := apply(ctx, tx, refueling); err != nil {
			return err
		}
		if err := tx.UpdateRefueling(ctx, refueling); err != nil {
			return err
		}
		result = refueling
		return nil
	})
	if err != nil {
		logger.Warn(ctx).Err(err).
			Uint("refueling_id", cmd.ID).
			Str("to", string(to)).
			Msg("Refueling transition rejected")
		return nil, err
	}

	metrics.RefuelingTransitionsTotal.WithLabelValues(string(to)).Inc()
	logger.Info(ctx).
		Uint("refueling_id", result.ID).
		Str("reference", result.Reference).
		Str("from", string(from)).
		Str("to", string(to)).
		Str("operator", cmd.Operator).
		Msg("Refueling status changed")

	notifier.TankChanged(ctx, "refueling."+string(to), result.TankID)
	return result, nil
}

// ConfirmRefuelingHandler moves a draft to confirmed, withdrawing its liters
// from the tank
type ConfirmRefuelingHandler struct {
	repo      domain.Repository
	sequences domain.SequenceGenerator
	notifier  *Notifier
}

// NewConfirmRefuelingHandler creates a new confirm refueling handler
func NewConfirmRefuelingHandler(repo domain.Repository, sequences domain.SequenceGenerator, notifier *Notifier) *ConfirmRefuelingHandler {
	return &ConfirmRefuelingHandler{repo: repo, sequences: sequences, notifier: notifier}
}

// Handle executes the confirm command. The reference is drawn on the first
// confirmation only.
func (h *ConfirmRefuelingHandler) Handle(ctx context.Context, cmd TransitionRefuelingCommand) (*domain.Refueling, error) {
	return runTransition(ctx, h.repo, h.notifier, cmd, domain.StatusConfirmed,
		func(ctx context.Context, tx domain.Repository, refueling *domain.Refueling) error {
			return refueling.Confirm(func() (string, error) {
				return h.sequences.Next(ctx, tx, domain.RefuelingSequenceCode)
			})
		})
}

// CancelRefuelingHandler moves a confirmed refueling to cancelled, returning
// its liters to the tank
type CancelRefuelingHandler struct {
	repo     domain.Repository
	notifier *Notifier
}

// NewCancelRefuelingHandler creates a new cancel refueling handler
func NewCancelRefuelingHandler(repo domain.Repository, notifier *Notifier) *CancelRefuelingHandler {
	return &CancelRefuelingHandler{repo: repo, notifier: notifier}
}

// Handle executes the cancel command
func (h *CancelRefuelingHandler) Handle(ctx context.Context, cmd TransitionRefuelingCommand) (*domain.Refueling, error) {
	return runTransition(ctx, h.repo, h.notifier, cmd, domain.StatusCancelled,
		func(_ context.Context, _ domain.Repository, refueling *domain.Refueling) error {
			return refueling.Cancel()
		})
}

// ResetRefuelingHandler moves a cancelled refueling back to draft
type ResetRefuelingHandler struct {
	repo     domain.Repository
	notifier *Notifier
}

// NewResetRefuelingHandler creates a new reset refueling handler
func NewResetRefuelingHandler(repo domain.Repository, notifier *Notifier) *ResetRefuelingHandler {
	return &ResetRefuelingHandler{repo: repo, notifier: notifier}
}

// Handle executes the reset to draft command
func (h *ResetRefuelingHandler) Handle(ctx context.Context, cmd TransitionRefuelingCommand) (*domain.Refueling, error) {
	return runTransition(ctx, h.repo, h.notifier, cmd, domain.StatusDraft,
		func(_ context.Context, _ domain.Repository, refueling *domain.Refueling) error {
			return refueling.ResetToDraft()
		})
}
