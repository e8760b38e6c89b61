package query_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/fueltest"
	"github.com/tair/fuel-control/internal/fuel/usecase/query"
)

func TestListTanksLimitAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)
	for i := 0; i < 25; i++ {
		fueltest.SeedTank(t, repo, fmt.Sprintf("T%02d", i), "1000")
	}
	archived := fueltest.SeedTank(t, repo, "Archived", "1000")
	archived.Active = false
	require.NoError(t, repo.UpdateTank(ctx, archived))

	h := query.NewListTanksHandler(repo)

	tanks, err := h.Handle(ctx, query.ListTanksQuery{})
	require.NoError(t, err)
	assert.Len(t, tanks, 20)
	assert.Equal(t, "Archived", tanks[0].Name)

	active := true
	tanks, err = h.Handle(ctx, query.ListTanksQuery{Active: &active, Limit: 500})
	require.NoError(t, err)
	assert.Len(t, tanks, 25)
	for _, tank := range tanks {
		assert.True(t, tank.Active)
	}
}

func TestCountDocumentReceipts(t *testing.T) {
	ctx := context.Background()
	repo := fueltest.NewRepository(t)
	tank := fueltest.SeedTank(t, repo, "Main", "6000")

	for _, ref := range []string{"Purchase: WH/IN/7", "Purchase: WH/IN/7", "Purchase: WH/IN/8"} {
		require.NoError(t, repo.CreateReceipt(ctx, &domain.Receipt{
			TankID: tank.ID, ReceivedAt: time.Now(), Liters: fueltest.Dec("10"),
			Reference: ref, Source: domain.SourceReceiving, RecordedBy: "ops",
		}))
	}

	h := query.NewCountDocumentReceiptsHandler(repo)

	count, err := h.Handle(ctx, query.CountDocumentReceiptsQuery{Document: "WH/IN/7"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = h.Handle(ctx, query.CountDocumentReceiptsQuery{Document: "  "})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListRefuelingsRejectsUnknownStatus(t *testing.T) {
	repo := fueltest.NewRepository(t)
	h := query.NewListRefuelingsHandler(repo)

	_, err := h.Handle(context.Background(), query.ListRefuelingsQuery{Status: "done"})
	assert.ErrorIs(t, err, domain.ErrFieldValidation)

	refuelings, err := h.Handle(context.Background(), query.ListRefuelingsQuery{Status: "Confirmed"})
	require.NoError(t, err)
	assert.Empty(t, refuelings)
}
