// Package fueltest provides an in-memory database for fuel tests.
package fueltest

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/ledger"
	"github.com/tair/fuel-control/internal/fuel/repository"
)

// NewDB opens a migrated in-memory SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

// NewFileDB opens a migrated SQLite file database with a real connection
// pool. Transactions start with BEGIN IMMEDIATE and wait on each other
// instead of failing with SQLITE_BUSY.
func NewFileDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "fuel.db") + "?_busy_timeout=10000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

// NewRepository returns a repository wired to a fresh ledger.
func NewRepository(t testing.TB) *repository.GormRepository {
	t.Helper()
	return repository.NewGormRepository(NewDB(t), ledger.New())
}

// Dec parses a decimal literal.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SeedTank creates an active tank.
func SeedTank(t testing.TB, repo domain.Repository, name, capacity string) *domain.Tank {
	t.Helper()

	tank := &domain.Tank{Name: name, Capacity: Dec(capacity), Active: true}
	require.NoError(t, repo.CreateTank(t.Context(), tank))
	return tank
}
