package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the data access contract of the fuel service.
//
// Every receipt and refueling write notifies the registered TankObservers
// inside the writing transaction, once per affected tank.
type Repository interface {
	// WithinTx runs fn against a repository bound to a single transaction.
	// A non-nil error from fn rolls the transaction back.
	WithinTx(ctx context.Context, fn func(repo Repository) error) error

	CreateTank(ctx context.Context, tank *Tank) error
	FindTank(ctx context.Context, id uint) (*Tank, error)
	LockTank(ctx context.Context, id uint) (*Tank, error)
	ListTanks(ctx context.Context, filter TankFilter) ([]Tank, error)
	UpdateTank(ctx context.Context, tank *Tank) error
	SaveTankLevels(ctx context.Context, tank *Tank) error
	DeleteTank(ctx context.Context, id uint) error
	FirstActiveTank(ctx context.Context) (*Tank, error)

	CreateReceipt(ctx context.Context, receipt *Receipt) error
	FindReceipt(ctx context.Context, id uint) (*Receipt, error)
	ListReceipts(ctx context.Context, filter ReceiptFilter) ([]Receipt, error)
	DeleteReceipt(ctx context.Context, id uint) error
	CountReceiptsByReference(ctx context.Context, fragment string) (int64, error)
	SumReceiptLiters(ctx context.Context, tankID uint) (decimal.Decimal, error)

	CreateRefueling(ctx context.Context, refueling *Refueling) error
	FindRefueling(ctx context.Context, id uint) (*Refueling, error)
	LockRefueling(ctx context.Context, id uint) (*Refueling, error)
	ListRefuelings(ctx context.Context, filter RefuelingFilter) ([]Refueling, error)
	UpdateRefueling(ctx context.Context, refueling *Refueling) error
	DeleteRefueling(ctx context.Context, id uint) error
	SumConfirmedRefuelingLiters(ctx context.Context, tankID uint) (decimal.Decimal, error)

	NextSequenceValue(ctx context.Context, code string) (int64, error)
	// RecordReceivingEvent stores the event id and reports false when it was
	// already recorded.
	RecordReceivingEvent(ctx context.Context, record *ReceivingEventRecord) (bool, error)
}

// TankObserver is told that the ledger rows of a tank changed. It runs inside
// the writing transaction and an error aborts the write.
type TankObserver interface {
	TankLedgerChanged(ctx context.Context, repo Repository, tankID uint) error
}

// SequenceGenerator hands out refueling references.
type SequenceGenerator interface {
	// Next returns the formatted reference for the next value of code.
	Next(ctx context.Context, repo Repository, code string) (string, error)
}
