// Package ledger derives a tank's stock from its receipts and confirmed
// refuelings.
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/pkg/logger"
)

// Store is the part of the repository the ledger reads and writes.
type Store interface {
	LockTank(ctx context.Context, id uint) (*domain.Tank, error)
	SumReceiptLiters(ctx context.Context, tankID uint) (decimal.Decimal, error)
	SumConfirmedRefuelingLiters(ctx context.Context, tankID uint) (decimal.Decimal, error)
	SaveTankLevels(ctx context.Context, tank *domain.Tank) error
}

// Ledger recomputes tank levels from source rows. There is no incremental
// path: every call sums the full history of the tank.
type Ledger struct{}

// New creates a ledger.
func New() *Ledger {
	return &Ledger{}
}

// Recompute locks the tank, re-sums both sides of its ledger, checks the
// bounds and persists the derived columns. It must run inside the
// transaction that changed the ledger rows.
func (l *Ledger) Recompute(ctx context.Context, store Store, tankID uint) (*domain.Tank, error) {
	tank, err := store.LockTank(ctx, tankID)
	if err != nil {
		return nil, err
	}

	received, err := store.SumReceiptLiters(ctx, tankID)
	if err != nil {
		return nil, err
	}
	withdrawn, err := store.SumConfirmedRefuelingLiters(ctx, tankID)
	if err != nil {
		return nil, err
	}

	tank.ApplyLedger(received, withdrawn)
	if err := tank.CheckBounds(); err != nil {
		logger.Warn(ctx).
			Uint("tank_id", tank.ID).
			Str("stock", tank.CurrentStock.String()).
			Str("capacity", tank.Capacity.String()).
			Msg("Tank ledger out of bounds")
		return nil, err
	}

	if err := store.SaveTankLevels(ctx, tank); err != nil {
		return nil, fmt.Errorf("failed to recompute tank %d: %w", tankID, err)
	}

	logger.Debug(ctx).
		Uint("tank_id", tank.ID).
		Str("received", received.String()).
		Str("withdrawn", withdrawn.String()).
		Str("stock", tank.CurrentStock.String()).
		Str("fill_percentage", tank.FillPercentage.String()).
		Msg("Tank ledger recomputed")
	return tank, nil
}

// TankLedgerChanged makes the ledger a repository observer.
func (l *Ledger) TankLedgerChanged(ctx context.Context, repo domain.Repository, tankID uint) error {
	_, err := l.Recompute(ctx, repo, tankID)
	return err
}

var _ domain.TankObserver = (*Ledger)(nil)
