package command_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/fueltest"
	"github.com/tair/fuel-control/internal/fuel/ledger"
	"github.com/tair/fuel-control/internal/fuel/repository"
	"github.com/tair/fuel-control/internal/fuel/sequence"
	"github.com/tair/fuel-control/internal/fuel/usecase/command"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.StockChangedEvent
}

func (p *recordingPublisher) PublishStockChanged(_ context.Context, event domain.StockChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	ctx       context.Context
	repo      domain.Repository
	publisher *recordingPublisher

	createTank      *command.CreateTankHandler
	updateTank      *command.UpdateTankHandler
	setTankActive   *command.SetTankActiveHandler
	deleteTank      *command.DeleteTankHandler
	recomputeTank   *command.RecomputeTankHandler
	createReceipt   *command.CreateReceiptHandler
	deleteReceipt   *command.DeleteReceiptHandler
	createRefueling *command.CreateRefuelingHandler
	updateRefueling *command.UpdateRefuelingHandler
	deleteRefueling *command.DeleteRefuelingHandler
	confirm         *command.ConfirmRefuelingHandler
	cancel          *command.CancelRefuelingHandler
	reset           *command.ResetRefuelingHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, fueltest.NewDB(t))
}

func newFixtureOn(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	l := ledger.New()
	repo := repository.NewGormRepository(db, l)
	publisher := &recordingPublisher{}
	notifier := command.NewNotifier(repo, publisher)
	seq := sequence.NewTable(sequence.DefaultPrefix, sequence.DefaultPadding)

	return &fixture{
		ctx:             context.Background(),
		repo:            repo,
		publisher:       publisher,
		createTank:      command.NewCreateTankHandler(repo, notifier),
		updateTank:      command.NewUpdateTankHandler(repo, notifier),
		setTankActive:   command.NewSetTankActiveHandler(repo),
		deleteTank:      command.NewDeleteTankHandler(repo),
		recomputeTank:   command.NewRecomputeTankHandler(repo, l, notifier),
		createReceipt:   command.NewCreateReceiptHandler(repo, notifier),
		deleteReceipt:   command.NewDeleteReceiptHandler(repo, notifier),
		createRefueling: command.NewCreateRefuelingHandler(repo),
		updateRefueling: command.NewUpdateRefuelingHandler(repo, notifier),
		deleteRefueling: command.NewDeleteRefuelingHandler(repo, notifier),
		confirm:         command.NewConfirmRefuelingHandler(repo, seq, notifier),
		cancel:          command.NewCancelRefuelingHandler(repo, notifier),
		reset:           command.NewResetRefuelingHandler(repo, notifier),
	}
}

func (f *fixture) tank(t *testing.T, capacity string) *domain.Tank {
	t.Helper()
	tank, err := f.createTank.Handle(f.ctx, command.CreateTankCommand{Name: "Main", Capacity: fueltest.Dec(capacity)})
	require.NoError(t, err)
	return tank
}

func (f *fixture) receive(t *testing.T, tankID uint, liters string) *domain.Receipt {
	t.Helper()
	receipt, err := f.createReceipt.Handle(f.ctx, command.CreateReceiptCommand{
		TankID: tankID, Liters: fueltest.Dec(liters), RecordedBy: "ops",
	})
	require.NoError(t, err)
	return receipt
}

func (f *fixture) draft(t *testing.T, tankID uint, liters, price string) *domain.Refueling {
	t.Helper()
	refueling, err := f.createRefueling.Handle(f.ctx, command.CreateRefuelingCommand{
		Equipment:  "EXC-12",
		Liters:     fueltest.Dec(liters),
		UnitPrice:  fueltest.Dec(price),
		TankID:     tankID,
		RecordedBy: "ops",
	})
	require.NoError(t, err)
	return refueling
}

func (f *fixture) stock(t *testing.T, tankID uint) decimal.Decimal {
	t.Helper()
	tank, err := f.repo.FindTank(f.ctx, tankID)
	require.NoError(t, err)
	return tank.CurrentStock
}

func (f *fixture) transition(id uint) command.TransitionRefuelingCommand {
	return command.TransitionRefuelingCommand{ID: id, Operator: "ops"}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, fueltest.Dec(want).Equal(got), append([]interface{}{"want %s got %s", want, got}, msgAndArgs...)...)
}

func TestCreateTankDefaults(t *testing.T) {
	f := newFixture(t)

	tank, err := f.createTank.Handle(f.ctx, command.CreateTankCommand{Name: "  Yard  "})
	require.NoError(t, err)
	assert.Equal(t, "Yard", tank.Name)
	assertDec(t, "6000", tank.Capacity)
	assert.True(t, tank.Active)
	assertDec(t, "0", tank.CurrentStock)

	_, err = f.createTank.Handle(f.ctx, command.CreateTankCommand{Name: ""})
	assert.ErrorIs(t, err, domain.ErrFieldValidation)

	_, err = f.createTank.Handle(f.ctx, command.CreateTankCommand{Name: "Bad", Capacity: fueltest.Dec("-1")})
	assert.ErrorIs(t, err, domain.ErrFieldValidation)
}

func TestReceiptUpdatesStockAndFill(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "6000")

	f.receive(t, tank.ID, "500")

	stored, err := f.repo.FindTank(f.ctx, tank.ID)
	require.NoError(t, err)
	assertDec(t, "500", stored.CurrentStock)
	assertDec(t, "8.33", stored.FillPercentage)

	require.NotEmpty(t, f.publisher.events)
	last := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, "receipt.created", last.Cause)
	assertDec(t, "500", last.CurrentStock)
}

func TestReceiptRejectsNonPositiveLiters(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "6000")

	for _, liters := range []string{"0", "-10"} {
		cmd := command.CreateReceiptCommand{TankID: tank.ID, Liters: fueltest.Dec(liters), RecordedBy: "ops"}
		_, err := f.createReceipt.Handle(f.ctx, cmd)

		var fieldErr *domain.FieldError
		require.ErrorAs(t, err, &fieldErr, "liters=%s", liters)
		assert.Equal(t, "liters", fieldErr.Field)
	}
	assertDec(t, "0", f.stock(t, tank.ID))
}

func TestReceiptForUnknownTank(t *testing.T) {
	f := newFixture(t)

	_, err := f.createReceipt.Handle(f.ctx, command.CreateReceiptCommand{TankID: 99, Liters: fueltest.Dec("1"), RecordedBy: "ops"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOverdrawIsRejected(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "6000")
	f.receive(t, tank.ID, "6000")
	assertDec(t, "6000", f.stock(t, tank.ID))

	refueling := f.draft(t, tank.ID, "6500", "5.50")
	assertDec(t, "35750", refueling.Total)

	_, err := f.confirm.Handle(f.ctx, f.transition(refueling.ID))
	var boundsErr *domain.BoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.True(t, boundsErr.Stock.IsNegative())
	assertDec(t, "-500", boundsErr.Stock)

	stored, err := f.repo.FindRefueling(f.ctx, refueling.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, stored.Status)
	assert.Empty(t, stored.Reference)
	assertDec(t, "6000", f.stock(t, tank.ID))

	// the rolled back confirmation did not consume a reference
	ok := f.draft(t, tank.ID, "100", "5.50")
	confirmed, err := f.confirm.Handle(f.ctx, f.transition(ok.ID))
	require.NoError(t, err)
	assert.Equal(t, "RFL/00001", confirmed.Reference)
}

func TestReceiptOverCapacityIsRejected(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "1000")
	f.receive(t, tank.ID, "900")

	_, err := f.createReceipt.Handle(f.ctx, command.CreateReceiptCommand{TankID: tank.ID, Liters: fueltest.Dec("100.01"), RecordedBy: "ops"})
	require.ErrorIs(t, err, domain.ErrBoundsViolation)
	assertDec(t, "900", f.stock(t, tank.ID))
}

func TestDraftsDoNotAffectStock(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "6000")
	f.receive(t, tank.ID, "1000")

	first := f.draft(t, tank.ID, "100", "6")
	second := f.draft(t, tank.ID, "50", "6")
	assertDec(t, "1000", f.stock(t, tank.ID))

	_, err := f.confirm.Handle(f.ctx, f.transition(first.ID))
	require.NoError(t, err)
	_, err = f.confirm.Handle(f.ctx, f.transition(second.ID))
	require.NoError(t, err)
	assertDec(t, "850", f.stock(t, tank.ID))

	_, err = f.cancel.Handle(f.ctx, f.transition(first.ID))
	require.NoError(t, err)
	assertDec(t, "950", f.stock(t, tank.ID))

	_, err = f.cancel.Handle(f.ctx, f.transition(second.ID))
	require.NoError(t, err)
	assertDec(t, "1000", f.stock(t, tank.ID))
}

func TestReferenceSurvivesRoundTrip(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "6000")
	f.receive(t, tank.ID, "1000")
	refueling := f.draft(t, tank.ID, "100", "6")

	confirmed, err := f.confirm.Handle(f.ctx, f.transition(refueling.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, confirmed.Status)
	require.NotEmpty(t, confirmed.Reference)
	reference := confirmed.Reference

	cancelled, err := f.cancel.Handle(f.ctx, f.transition(refueling.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	drafted, err := f.reset.Handle(f.ctx, f.transition(refueling.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, drafted.Status)
	assert.Equal(t, reference, drafted.Reference)
	assertDec(t, "1000", f.stock(t, tank.ID))

	again, err := f.confirm.Handle(f.ctx, f.transition(refueling.ID))
	require.NoError(t, err)
	assert.Equal(t, reference, again.Reference)
	assertDec(t, "900", f.stock(t, tank.ID))

	next := f.draft(t, tank.ID, "10", "6")
	other, err := f.confirm.Handle(f.ctx, f.transition(next.ID))
	require.NoError(t, err)
	assert.Equal(t, "RFL/00002", other.Reference)
}

func TestInvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "6000")
	f.receive(t, tank.ID, "1000")
	refueling := f.draft(t, tank.ID, "100", "6")

	_, err := f.cancel.Handle(f.ctx, f.transition(refueling.ID))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "only confirmed refuelings can be cancelled")

	_, err = f.reset.Handle(f.ctx, f.transition(refueling.ID))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.confirm.Handle(f.ctx, f.transition(refueling.ID))
	require.NoError(t, err)

	_, err = f.confirm.Handle(f.ctx, f.transition(refueling.ID))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "only drafts can be confirmed")

	stored, err := f.repo.FindRefueling(f.ctx, refueling.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assertDec(t, "900", f.stock(t, tank.ID))

	_, err = f.confirm.Handle(f.ctx, f.transition(12345))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateRefuelingRecomputesTotalAndLedger(t *testing.T) {
	f := newFixture(t)
	a := f.tank(t, "6000")
	b := f.tank(t, "6000")
	f.receive(t, a.ID, "1000")
	f.receive(t, b.ID, "1000")

	refueling := f.draft(t, a.ID, "100", "6")
	_, err := f.confirm.Handle(f.ctx, f.transition(refueling.ID))
	require.NoError(t, err)
	assertDec(t, "900", f.stock(t, a.ID))

	liters := fueltest.Dec("250")
	price := fueltest.Dec("5.9990")
	updated, err := f.updateRefueling.Handle(f.ctx, command.UpdateRefuelingCommand{ID: refueling.ID, Liters: &liters, UnitPrice: &price})
	require.NoError(t, err)
	assertDec(t, "1499.75", updated.Total)
	assertDec(t, "750", f.stock(t, a.ID))

	tankID := b.ID
	_, err = f.updateRefueling.Handle(f.ctx, command.UpdateRefuelingCommand{ID: refueling.ID, TankID: &tankID})
	require.NoError(t, err)
	assertDec(t, "1000", f.stock(t, a.ID))
	assertDec(t, "750", f.stock(t, b.ID))

	tooMuch := fueltest.Dec("1000.5")
	_, err = f.updateRefueling.Handle(f.ctx, command.UpdateRefuelingCommand{ID: refueling.ID, Liters: &tooMuch})
	require.ErrorIs(t, err, domain.ErrBoundsViolation)

	stored, err := f.repo.FindRefueling(f.ctx, refueling.ID)
	require.NoError(t, err)
	assertDec(t, "250", stored.Liters)
	assertDec(t, "750", f.stock(t, b.ID))

	zero := decimal.Zero
	_, err = f.updateRefueling.Handle(f.ctx, command.UpdateRefuelingCommand{ID: refueling.ID, UnitPrice: &zero})
	require.ErrorIs(t, err, domain.ErrFieldValidation)
}

func TestDeleteRefuelingAndReceipt(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "6000")
	receipt := f.receive(t, tank.ID, "500")
	refueling := f.draft(t, tank.ID, "200", "6")
	_, err := f.confirm.Handle(f.ctx, f.transition(refueling.ID))
	require.NoError(t, err)
	assertDec(t, "300", f.stock(t, tank.ID))

	// removing the receipt would leave -200 liters
	err = f.deleteReceipt.Handle(f.ctx, command.DeleteReceiptCommand{ID: receipt.ID})
	require.ErrorIs(t, err, domain.ErrBoundsViolation)

	require.NoError(t, f.deleteRefueling.Handle(f.ctx, command.DeleteRefuelingCommand{ID: refueling.ID}))
	assertDec(t, "500", f.stock(t, tank.ID))

	require.NoError(t, f.deleteReceipt.Handle(f.ctx, command.DeleteReceiptCommand{ID: receipt.ID}))
	assertDec(t, "0", f.stock(t, tank.ID))

	assert.ErrorIs(t, f.deleteReceipt.Handle(f.ctx, command.DeleteReceiptCommand{ID: receipt.ID}), domain.ErrNotFound)
}

func TestTankLifecycle(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "1000")
	f.receive(t, tank.ID, "800")

	capacity := fueltest.Dec("700")
	_, err := f.updateTank.Handle(f.ctx, command.UpdateTankCommand{ID: tank.ID, Capacity: &capacity})
	require.ErrorIs(t, err, domain.ErrBoundsViolation)

	capacity = fueltest.Dec("2000")
	name := "North"
	updated, err := f.updateTank.Handle(f.ctx, command.UpdateTankCommand{ID: tank.ID, Name: &name, Capacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, "North", updated.Name)
	assertDec(t, "40", updated.FillPercentage)

	archived, err := f.setTankActive.Handle(f.ctx, command.SetTankActiveCommand{ID: tank.ID, Active: false})
	require.NoError(t, err)
	assert.False(t, archived.Active)

	err = f.deleteTank.Handle(f.ctx, command.DeleteTankCommand{ID: tank.ID})
	require.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	empty := f.tank(t, "100")
	require.NoError(t, f.deleteTank.Handle(f.ctx, command.DeleteTankCommand{ID: empty.ID}))
}

func TestRecomputeTank(t *testing.T) {
	f := newFixture(t)
	a := f.tank(t, "1000")
	b := f.tank(t, "1000")
	f.receive(t, a.ID, "100")
	f.receive(t, b.ID, "200")

	drift := &domain.Tank{ID: a.ID, CurrentStock: fueltest.Dec("1"), FillPercentage: fueltest.Dec("0.1")}
	require.NoError(t, f.repo.SaveTankLevels(f.ctx, drift))

	tanks, err := f.recomputeTank.Handle(f.ctx, command.RecomputeTankCommand{ID: a.ID})
	require.NoError(t, err)
	require.Len(t, tanks, 1)
	assertDec(t, "100", tanks[0].CurrentStock)

	tanks, err = f.recomputeTank.Handle(f.ctx, command.RecomputeTankCommand{All: true})
	require.NoError(t, err)
	assert.Len(t, tanks, 2)

	_, err = f.recomputeTank.Handle(f.ctx, command.RecomputeTankCommand{})
	assert.ErrorIs(t, err, domain.ErrFieldValidation)
}

func TestLedgerMatchesSourceRowsAfterMixedOperations(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "6000")

	f.receive(t, tank.ID, "1200.50")
	f.receive(t, tank.ID, "300.25")
	r1 := f.draft(t, tank.ID, "100.10", "5.5")
	r2 := f.draft(t, tank.ID, "200.20", "5.5")
	r3 := f.draft(t, tank.ID, "50", "5.5")

	for _, id := range []uint{r1.ID, r2.ID, r3.ID} {
		_, err := f.confirm.Handle(f.ctx, f.transition(id))
		require.NoError(t, err)
	}
	_, err := f.cancel.Handle(f.ctx, f.transition(r2.ID))
	require.NoError(t, err)
	_, err = f.reset.Handle(f.ctx, f.transition(r2.ID))
	require.NoError(t, err)

	liters := fueltest.Dec("75.5")
	_, err = f.updateRefueling.Handle(f.ctx, command.UpdateRefuelingCommand{ID: r3.ID, Liters: &liters})
	require.NoError(t, err)

	// 1500.75 received, 100.10 + 75.5 withdrawn
	assertDec(t, "1325.15", f.stock(t, tank.ID))

	received, err := f.repo.SumReceiptLiters(f.ctx, tank.ID)
	require.NoError(t, err)
	withdrawn, err := f.repo.SumConfirmedRefuelingLiters(f.ctx, tank.ID)
	require.NoError(t, err)
	assertDec(t, received.Sub(withdrawn).String(), f.stock(t, tank.ID))
}

func TestConcurrentConfirmationsNeverOverdraw(t *testing.T) {
	f := newFixtureOn(t, fueltest.NewFileDB(t))
	tank := f.tank(t, "1000")
	f.receive(t, tank.ID, "100")

	drafts := make([]*domain.Refueling, 10)
	for i := range drafts {
		drafts[i] = f.draft(t, tank.ID, "20", "5")
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		confirmed  []*domain.Refueling
		rejections []error
	)
	for _, d := range drafts {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			refueling, err := f.confirm.Handle(f.ctx, f.transition(id))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rejections = append(rejections, err)
				return
			}
			confirmed = append(confirmed, refueling)
		}(d.ID)
	}
	wg.Wait()

	require.Len(t, confirmed, 5)
	require.Len(t, rejections, 5)
	for _, err := range rejections {
		assert.ErrorIs(t, err, domain.ErrBoundsViolation)
	}

	references := make(map[string]struct{})
	for _, r := range confirmed {
		assert.NotEmpty(t, r.Reference)
		references[r.Reference] = struct{}{}
	}
	assert.Len(t, references, 5)

	assertDec(t, "0", f.stock(t, tank.ID))
}

type fixedSequence string

func (s fixedSequence) Next(context.Context, domain.Repository, string) (string, error) {
	return string(s), nil
}

func TestReusedReferenceIsRejected(t *testing.T) {
	f := newFixture(t)
	tank := f.tank(t, "1000")
	f.receive(t, tank.ID, "500")
	first := f.draft(t, tank.ID, "50", "5")
	second := f.draft(t, tank.ID, "50", "5")

	// a redis counter that was reset hands out a number already in use
	confirm := command.NewConfirmRefuelingHandler(f.repo, fixedSequence("RFL/00001"), command.NewNotifier(f.repo, f.publisher))

	_, err := confirm.Handle(f.ctx, f.transition(first.ID))
	require.NoError(t, err)

	_, err = confirm.Handle(f.ctx, f.transition(second.ID))
	require.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	stored, err := f.repo.FindRefueling(f.ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, stored.Status)
	assert.Empty(t, stored.Reference)
	assertDec(t, "450", f.stock(t, tank.ID))
}
