package command

import (
	"context"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/metrics"
	"github.com/tair/fuel-control/pkg/logger"
)

// Notifier reports committed tank levels to the gauges and the event
// publisher. Failures are logged and never undo the committed change.
type Notifier struct {
	repo      domain.Repository
	publisher domain.EventPublisher
}

// NewNotifier creates a new notifier
func NewNotifier(repo domain.Repository, publisher domain.EventPublisher) *Notifier {
	if publisher == nil {
		publisher = domain.NoopPublisher{}
	}
	return &Notifier{repo: repo, publisher: publisher}
}

// TankChanged reloads every tank in tankIDs and publishes its levels.
func (n *Notifier) TankChanged(ctx context.Context, cause string, tankIDs ...uint) {
	if n == nil {
		return
	}

	seen := make(map[uint]bool, len(tankIDs))
	for _, id := range tankIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true

		tank, err := n.repo.FindTank(ctx, id)
		if err != nil {
			logger.Error(ctx).Err(err).Uint("tank_id", id).Msg("Failed to reload tank after commit")
			continue
		}

		metrics.ObserveTank(tank.ID, tank.Name, tank.CurrentStock, tank.FillPercentage)

		if err := n.publisher.PublishStockChanged(ctx, domain.NewStockChangedEvent(tank, cause)); err != nil {
			logger.Error(ctx).Err(err).Uint("tank_id", id).Str("cause", cause).Msg("Failed to publish stock change")
		}
	}
}
