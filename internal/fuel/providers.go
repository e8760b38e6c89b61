// Package fuel assembles the fuel ledger service.
package fuel

import (
	"strings"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/fuel-control/internal/config"
	fuelhttp "github.com/tair/fuel-control/internal/fuel/delivery/http"
	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/ledger"
	"github.com/tair/fuel-control/internal/fuel/receiving"
	"github.com/tair/fuel-control/internal/fuel/repository"
	"github.com/tair/fuel-control/internal/fuel/sequence"
	"github.com/tair/fuel-control/internal/fuel/usecase/command"
	"github.com/tair/fuel-control/internal/fuel/usecase/query"
)

// Settings carries the configuration the service components need
type Settings struct {
	SequenceBackend string
	SequencePrefix  string
	SequencePadding int
	FuelCategory    string
	JWTSecret       []byte
}

// SettingsFromConfig extracts the service settings from cfg
func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		SequenceBackend: cfg.SequenceBackend,
		SequencePrefix:  cfg.SequencePrefix,
		SequencePadding: cfg.SequencePadding,
		FuelCategory:    cfg.FuelCategory,
		JWTSecret:       []byte(cfg.JWTSecret),
	}
}

// Service exposes the assembled handlers
type Service struct {
	Repository domain.Repository
	Commands   fuelhttp.Commands
	Queries    fuelhttp.Queries
	Dispatcher *receiving.Dispatcher
	Handler    *fuelhttp.FuelHandler
}

// ProvideRepository provides the fuel repository with the ledger observing
// every tank change
func ProvideRepository(db *gorm.DB, l *ledger.Ledger) domain.Repository {
	return repository.NewGormRepository(db, l)
}

// ProvideSequenceGenerator picks the reference generator. The redis backend
// is used only when selected and a client is available.
func ProvideSequenceGenerator(settings Settings, client redis.Cmdable) domain.SequenceGenerator {
	prefix := settings.SequencePrefix
	if prefix == "" {
		prefix = sequence.DefaultPrefix
	}
	padding := settings.SequencePadding
	if padding <= 0 {
		padding = sequence.DefaultPadding
	}

	if strings.EqualFold(settings.SequenceBackend, config.SequenceBackendRedis) && client != nil {
		return sequence.NewRedis(client, prefix, padding)
	}
	return sequence.NewTable(prefix, padding)
}

// ProvideFuelIntake provides the receiving subscriber
func ProvideFuelIntake(repo domain.Repository, receipts *command.CreateReceiptHandler, notifier *command.Notifier, settings Settings) *receiving.FuelIntake {
	return receiving.NewFuelIntake(repo, receipts, notifier, receiving.Settings{FuelCategory: settings.FuelCategory})
}

// ProvideDispatcher provides the receiving dispatcher with the fuel intake
// subscribed
func ProvideDispatcher(intake *receiving.FuelIntake) *receiving.Dispatcher {
	return receiving.NewDispatcher(intake)
}

// ProvideHTTPHandler provides the HTTP handler
func ProvideHTTPHandler(commands fuelhttp.Commands, queries fuelhttp.Queries, dispatcher *receiving.Dispatcher, settings Settings) *fuelhttp.FuelHandler {
	return fuelhttp.NewFuelHandler(commands, queries, dispatcher, settings.JWTSecret)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ledger.New,
	ProvideRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewNotifier,
	ProvideSequenceGenerator,
	command.NewCreateTankHandler,
	command.NewUpdateTankHandler,
	command.NewSetTankActiveHandler,
	command.NewDeleteTankHandler,
	command.NewRecomputeTankHandler,
	command.NewCreateReceiptHandler,
	command.NewDeleteReceiptHandler,
	command.NewCreateRefuelingHandler,
	command.NewUpdateRefuelingHandler,
	command.NewDeleteRefuelingHandler,
	command.NewConfirmRefuelingHandler,
	command.NewCancelRefuelingHandler,
	command.NewResetRefuelingHandler,
	wire.Struct(new(fuelhttp.Commands), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetTankHandler,
	query.NewListTanksHandler,
	query.NewListReceiptsHandler,
	query.NewCountDocumentReceiptsHandler,
	query.NewGetRefuelingHandler,
	query.NewListRefuelingsHandler,
	wire.Struct(new(fuelhttp.Queries), "*"),
)

var ReceivingSet = wire.NewSet(
	ProvideFuelIntake,
	ProvideDispatcher,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	ReceivingSet,
	ProvideHTTPHandler,
	wire.Struct(new(Service), "*"),
)
