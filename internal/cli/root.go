// Package cli implements the fuelctl administration commands.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tair/fuel-control/internal/config"
	"github.com/tair/fuel-control/internal/fuel"
	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/repository"
	"github.com/tair/fuel-control/pkg/database"
	"github.com/tair/fuel-control/pkg/logger"
)

// Loader opens the service the commands run against. The returned function
// releases its resources.
type Loader func(ctx context.Context) (*fuel.Service, func(), error)

// DatabaseLoader connects to the configured database and migrates it.
func DatabaseLoader(cfg config.Config) Loader {
	return func(ctx context.Context) (*fuel.Service, func(), error) {
		db, err := database.NewGormConnection(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		if err := repository.Migrate(db); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}

		// fuelctl never uses the redis sequence: references drawn from the
		// CLI come from the table counter
		settings := fuel.SettingsFromConfig(cfg)
		settings.SequenceBackend = config.SequenceBackendTable

		svc, err := fuel.InitializeService(db, domain.NoopPublisher{}, nil, settings)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return svc, func() { sqlDB.Close() }, nil
	}
}

// RootCmd builds the fuelctl command tree.
func RootCmd(load Loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "fuelctl",
		Short:         "Administer fuel tanks, receipts and refuelings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(tankCmd(load))
	root.AddCommand(refuelingCmd(load))
	root.AddCommand(receiptCmd(load))
	return root
}

// withService runs fn against a loaded service.
func withService(cmd *cobra.Command, load Loader, fn func(ctx context.Context, svc *fuel.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, release, err := load(ctx)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to open fuel service")
		return fmt.Errorf("failed to open fuel service: %w", err)
	}
	defer release()

	return fn(ctx, svc)
}

func parseID(arg, entity string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s id %q", entity, arg)
	}
	return uint(id), nil
}
