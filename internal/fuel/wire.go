//go:build wireinject
// +build wireinject

package fuel

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

// InitializeService initializes the fuel service with all dependencies
func InitializeService(db *gorm.DB, publisher domain.EventPublisher, client redis.Cmdable, settings Settings) (*Service, error) {
	wire.Build(AllHandlersSet)
	return nil, nil
}
