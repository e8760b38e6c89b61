package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validRefueling() *Refueling {
	return &Refueling{
		Equipment:    "TRUCK-07",
		MeterReading: dec("1520.4"),
		Liters:       dec("40"),
		UnitPrice:    dec("5.899"),
		TankID:       1,
		RecordedBy:   "ops",
		Status:       StatusDraft,
	}
}

func TestRefuelingComputeTotal(t *testing.T) {
	r := validRefueling()
	r.ComputeTotal()
	assert.True(t, dec("235.96").Equal(r.Total), "got %s", r.Total)

	r.Liters = dec("12.5")
	r.UnitPrice = dec("6.1234")
	r.ComputeTotal()
	assert.True(t, dec("76.54").Equal(r.Total), "got %s", r.Total)
}

func TestRefuelingValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Refueling)
		field  string
	}{
		{name: "zero liters", mutate: func(r *Refueling) { r.Liters = decimal.Zero }, field: "liters"},
		{name: "negative liters", mutate: func(r *Refueling) { r.Liters = dec("-1") }, field: "liters"},
		{name: "zero unit price", mutate: func(r *Refueling) { r.UnitPrice = decimal.Zero }, field: "unit_price"},
		{name: "negative meter", mutate: func(r *Refueling) { r.MeterReading = dec("-0.1") }, field: "meter_reading"},
		{name: "missing equipment", mutate: func(r *Refueling) { r.Equipment = "  " }, field: "equipment"},
		{name: "missing tank", mutate: func(r *Refueling) { r.TankID = 0 }, field: "tank_id"},
		{name: "missing operator", mutate: func(r *Refueling) { r.RecordedBy = "" }, field: "recorded_by"},
		{name: "unknown status", mutate: func(r *Refueling) { r.Status = "done" }, field: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRefueling()
			tt.mutate(r)

			err := r.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFieldValidation))

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}

	assert.NoError(t, validRefueling().Validate())
}

func TestRefuelingLifecycle(t *testing.T) {
	r := validRefueling()
	calls := 0
	next := func() (string, error) {
		calls++
		return "RFL/00001", nil
	}

	require.NoError(t, r.Confirm(next))
	assert.Equal(t, StatusConfirmed, r.Status)
	assert.Equal(t, "RFL/00001", r.Reference)

	require.NoError(t, r.Cancel())
	assert.Equal(t, StatusCancelled, r.Status)

	require.NoError(t, r.ResetToDraft())
	assert.Equal(t, StatusDraft, r.Status)
	assert.Equal(t, "RFL/00001", r.Reference)

	require.NoError(t, r.Confirm(next))
	assert.Equal(t, 1, calls, "reference must be assigned only once")
	assert.Equal(t, "RFL/00001", r.Reference)
}

func TestRefuelingInvalidTransitionLeavesState(t *testing.T) {
	r := validRefueling()

	err := r.Cancel()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, StatusDraft, r.Status)

	var trErr *TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, StatusDraft, trErr.From)
	assert.Equal(t, StatusCancelled, trErr.To)
	assert.Contains(t, err.Error(), "only confirmed refuelings can be cancelled")

	err = r.ResetToDraft()
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, StatusDraft, r.Status)
}

func TestRefuelingConfirmSequenceFailure(t *testing.T) {
	r := validRefueling()
	boom := errors.New("sequence unavailable")

	err := r.Confirm(func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusDraft, r.Status)
	assert.Empty(t, r.Reference)
}
