package repository

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

// Migrate brings the fuel schema up to date.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20260301_create_fuel_ledger",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&domain.Tank{}, &domain.Receipt{}, &domain.Refueling{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&domain.Refueling{}, &domain.Receipt{}, &domain.Tank{})
			},
		},
		{
			ID: "20260315_add_sequences",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&domain.Sequence{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&domain.Sequence{})
			},
		},
		{
			ID: "20260402_add_receiving_events",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&domain.ReceivingEventRecord{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&domain.ReceivingEventRecord{})
			},
		},
		{
			ID: "20260420_unique_refueling_reference",
			Migrate: func(tx *gorm.DB) error {
				// drafts that were never confirmed carry no reference
				return tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS uniq_fuel_refuelings_reference " +
					"ON fuel_refuelings (reference) WHERE reference <> ''").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS uniq_fuel_refuelings_reference").Error
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate fuel schema: %w", err)
	}
	return nil
}
