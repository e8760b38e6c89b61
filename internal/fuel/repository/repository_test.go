package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/fueltest"
	"github.com/tair/fuel-control/internal/fuel/repository"
)

type recordingObserver struct {
	tankIDs []uint
	err     error
}

func (o *recordingObserver) TankLedgerChanged(_ context.Context, _ domain.Repository, tankID uint) error {
	o.tankIDs = append(o.tankIDs, tankID)
	return o.err
}

func newReceipt(tankID uint, liters, reference string) *domain.Receipt {
	return &domain.Receipt{
		TankID:     tankID,
		ReceivedAt: time.Now(),
		Liters:     fueltest.Dec(liters),
		Reference:  reference,
		Source:     domain.SourceManual,
		RecordedBy: "ops",
	}
}

func newRefueling(tankID uint, liters string, status domain.Status) *domain.Refueling {
	return &domain.Refueling{
		Equipment:  "TRUCK-01",
		RefueledAt: time.Now(),
		Liters:     fueltest.Dec(liters),
		UnitPrice:  fueltest.Dec("5.5"),
		TankID:     tankID,
		RecordedBy: "ops",
		Status:     status,
	}
}

func TestObserversNotifiedPerAffectedTank(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	repo := repository.NewGormRepository(fueltest.NewDB(t), obs)

	a := fueltest.SeedTank(t, repo, "A", "1000")
	b := fueltest.SeedTank(t, repo, "B", "1000")

	require.NoError(t, repo.CreateReceipt(ctx, newReceipt(a.ID, "100", "")))
	assert.Equal(t, []uint{a.ID}, obs.tankIDs)

	obs.tankIDs = nil
	refueling := newRefueling(a.ID, "10", domain.StatusDraft)
	require.NoError(t, repo.CreateRefueling(ctx, refueling))
	assert.Equal(t, []uint{a.ID}, obs.tankIDs)

	obs.tankIDs = nil
	refueling.TankID = b.ID
	require.NoError(t, repo.UpdateRefueling(ctx, refueling))
	assert.Equal(t, []uint{a.ID, b.ID}, obs.tankIDs)

	obs.tankIDs = nil
	require.NoError(t, repo.DeleteRefueling(ctx, refueling.ID))
	assert.Equal(t, []uint{b.ID}, obs.tankIDs)
}

func TestObserverErrorRollsBackWrite(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	repo := repository.NewGormRepository(fueltest.NewDB(t), obs)
	tank := fueltest.SeedTank(t, repo, "A", "1000")

	obs.err = errors.New("ledger refused")
	receipt := newReceipt(tank.ID, "100", "")
	err := repo.CreateReceipt(ctx, receipt)
	require.ErrorIs(t, err, obs.err)
	assert.Zero(t, receipt.ID, "input must not be touched on failure")

	obs.err = nil
	receipts, err := repo.ListReceipts(ctx, domain.ReceiptFilter{TankID: tank.ID})
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestRefuelingTotalIsDerivedOnSave(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)
	tank := fueltest.SeedTank(t, repo, "A", "1000")

	refueling := newRefueling(tank.ID, "40", domain.StatusDraft)
	refueling.UnitPrice = fueltest.Dec("5.899")
	refueling.Total = fueltest.Dec("1")
	require.NoError(t, repo.CreateRefueling(ctx, refueling))

	stored, err := repo.FindRefueling(ctx, refueling.ID)
	require.NoError(t, err)
	assert.True(t, fueltest.Dec("235.96").Equal(stored.Total), "got %s", stored.Total)

	stored.Liters = fueltest.Dec("10")
	require.NoError(t, repo.UpdateRefueling(ctx, stored))

	stored, err = repo.FindRefueling(ctx, refueling.ID)
	require.NoError(t, err)
	assert.True(t, fueltest.Dec("58.99").Equal(stored.Total), "got %s", stored.Total)
}

func TestCreateRejectsInvalidRows(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)
	tank := fueltest.SeedTank(t, repo, "A", "1000")

	err := repo.CreateReceipt(ctx, newReceipt(tank.ID, "0", ""))
	assert.ErrorIs(t, err, domain.ErrFieldValidation)

	err = repo.CreateRefueling(ctx, newRefueling(tank.ID, "-3", domain.StatusDraft))
	assert.ErrorIs(t, err, domain.ErrFieldValidation)
}

func TestDeleteTankRestricted(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)
	tank := fueltest.SeedTank(t, repo, "A", "1000")
	empty := fueltest.SeedTank(t, repo, "B", "1000")

	require.NoError(t, repo.CreateReceipt(ctx, newReceipt(tank.ID, "100", "")))

	err := repo.DeleteTank(ctx, tank.ID)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	_, err = repo.FindTank(ctx, tank.ID)
	assert.NoError(t, err)

	require.NoError(t, repo.DeleteTank(ctx, empty.ID))
	_, err = repo.FindTank(ctx, empty.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteTank(ctx, 999), domain.ErrNotFound)
}

func TestFirstActiveTankPrefersLowestID(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)

	_, err := repo.FirstActiveTank(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	first := fueltest.SeedTank(t, repo, "Zulu", "1000")
	second := fueltest.SeedTank(t, repo, "Alpha", "1000")

	tank, err := repo.FirstActiveTank(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, tank.ID)

	first.Active = false
	require.NoError(t, repo.UpdateTank(ctx, first))

	tank, err = repo.FirstActiveTank(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, tank.ID)
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)
	fueltest.SeedTank(t, repo, "Charlie", "1000")
	tank := fueltest.SeedTank(t, repo, "Alpha", "1000")
	fueltest.SeedTank(t, repo, "Bravo", "1000")

	tanks, err := repo.ListTanks(ctx, domain.TankFilter{})
	require.NoError(t, err)
	require.Len(t, tanks, 3)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, []string{tanks[0].Name, tanks[1].Name, tanks[2].Name})

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, ref := range []string{"old", "newest", "middle"} {
		receipt := newReceipt(tank.ID, "10", ref)
		receipt.ReceivedAt = base.Add([]time.Duration{0, 2 * time.Hour, time.Hour}[i])
		require.NoError(t, repo.CreateReceipt(ctx, receipt))
	}

	receipts, err := repo.ListReceipts(ctx, domain.ReceiptFilter{TankID: tank.ID})
	require.NoError(t, err)
	require.Len(t, receipts, 3)
	assert.Equal(t, "newest", receipts[0].Reference)
	assert.Equal(t, "middle", receipts[1].Reference)
	assert.Equal(t, "old", receipts[2].Reference)
}

func TestCountReceiptsByReference(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)
	tank := fueltest.SeedTank(t, repo, "A", "5000")

	for _, ref := range []string{"Purchase: WH/IN/00012", "Purchase: WH/IN/00012", "Purchase: WH/IN/00013", "100%_diesel"} {
		require.NoError(t, repo.CreateReceipt(ctx, newReceipt(tank.ID, "10", ref)))
	}

	count, err := repo.CountReceiptsByReference(ctx, "WH/IN/00012")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountReceiptsByReference(ctx, "WH/IN/0001")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count, "matching is by substring")

	count, err = repo.CountReceiptsByReference(ctx, "%")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "wildcards are literal")

	count, err = repo.CountReceiptsByReference(ctx, "1_0")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestNextSequenceValue(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)

	for want := int64(1); want <= 3; want++ {
		got, err := repo.NextSequenceValue(ctx, domain.RefuelingSequenceCode)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := repo.NextSequenceValue(ctx, "other")
	require.NoError(t, err)
	assert.EqualValues(t, 1, other)
}

func TestNextSequenceValueRolledBackWithCaller(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)

	boom := errors.New("abort")
	err := repo.WithinTx(ctx, func(tx domain.Repository) error {
		_, err := tx.NextSequenceValue(ctx, "code")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.NextSequenceValue(ctx, "code")
	require.NoError(t, err)
	assert.EqualValues(t, 1, got)
}

func TestRecordReceivingEvent(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)

	record := &domain.ReceivingEventRecord{
		EventID:     "evt-1",
		Document:    "WH/IN/00001",
		Payload:     datatypes.JSON(`{"document":"WH/IN/00001"}`),
		ProcessedAt: time.Now(),
	}
	fresh, err := repo.RecordReceivingEvent(ctx, record)
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.NotZero(t, record.ID)

	again := *record
	again.ID = 0
	fresh, err = repo.RecordReceivingEvent(ctx, &again)
	require.NoError(t, err)
	assert.False(t, fresh)
}
