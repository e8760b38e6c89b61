package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// GormRepository implements domain.Repository on gorm.
type GormRepository struct {
	db        *gorm.DB
	observers []domain.TankObserver
}

// NewGormRepository creates a repository that notifies observers of every
// ledger row change.
func NewGormRepository(db *gorm.DB, observers ...domain.TankObserver) *GormRepository {
	return &GormRepository{db: db, observers: observers}
}

func (r *GormRepository) with(tx *gorm.DB) *GormRepository {
	return &GormRepository{db: tx, observers: r.observers}
}

// WithinTx runs fn inside a transaction. Nested calls become savepoints.
func (r *GormRepository) WithinTx(ctx context.Context, fn func(repo domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.with(tx))
	})
}

// write runs fn in a transaction and notifies the observers of every tank id
// it returns before the transaction commits.
func (r *GormRepository) write(ctx context.Context, fn func(tx *gorm.DB) ([]uint, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tankIDs, err := fn(tx)
		if err != nil {
			return err
		}
		return r.with(tx).notify(ctx, tankIDs)
	})
}

func (r *GormRepository) notify(ctx context.Context, tankIDs []uint) error {
	seen := make(map[uint]bool, len(tankIDs))
	for _, id := range tankIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		for _, o := range r.observers {
			if err := o.TankLedgerChanged(ctx, r, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tanks

func (r *GormRepository) CreateTank(ctx context.Context, tank *domain.Tank) (err error) {
	ctx, span := startSpan(ctx, "repository.CreateTank", attribute.String("tank.name", tank.Name))
	defer func() { endSpan(span, err) }()

	row := *tank
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create tank: %w", translate(err))
	}
	*tank = row
	span.SetAttributes(tankAttr(tank.ID))
	return nil
}

func (r *GormRepository) FindTank(ctx context.Context, id uint) (_ *domain.Tank, err error) {
	ctx, span := startSpan(ctx, "repository.FindTank", tankAttr(id))
	defer func() { endSpan(span, err) }()

	var tank domain.Tank
	if err := r.db.WithContext(ctx).First(&tank, id).Error; err != nil {
		return nil, notFound(err, "tank", id)
	}
	return &tank, nil
}

// LockTank reads the tank row with SELECT ... FOR UPDATE. It only serializes
// anything when called inside a transaction.
func (r *GormRepository) LockTank(ctx context.Context, id uint) (_ *domain.Tank, err error) {
	ctx, span := startSpan(ctx, "repository.LockTank", tankAttr(id))
	defer func() { endSpan(span, err) }()

	var tank domain.Tank
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&tank, id).Error; err != nil {
		return nil, notFound(err, "tank", id)
	}
	return &tank, nil
}

func (r *GormRepository) ListTanks(ctx context.Context, filter domain.TankFilter) (_ []domain.Tank, err error) {
	ctx, span := startSpan(ctx, "repository.ListTanks",
		attribute.Int("query.limit", filter.Limit),
		attribute.Int("query.offset", filter.Offset),
	)
	defer func() { endSpan(span, err) }()

	q := r.db.WithContext(ctx).Model(&domain.Tank{})
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}
	q = paginate(q, filter.Limit, filter.Offset)

	var tanks []domain.Tank
	if err := q.Order("name ASC").Order("id ASC").Find(&tanks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tanks: %w", err)
	}
	span.SetAttributes(attribute.Int("result.count", len(tanks)))
	return tanks, nil
}

// UpdateTank stores the operator-editable fields and re-runs the ledger, so
// a capacity change is checked against the current stock.
func (r *GormRepository) UpdateTank(ctx context.Context, tank *domain.Tank) (err error) {
	ctx, span := startSpan(ctx, "repository.UpdateTank", tankAttr(tank.ID))
	defer func() { endSpan(span, err) }()

	return r.write(ctx, func(tx *gorm.DB) ([]uint, error) {
		res := tx.Model(&domain.Tank{}).Where("id = ?", tank.ID).Updates(map[string]interface{}{
			"name":       tank.Name,
			"capacity":   tank.Capacity,
			"active":     tank.Active,
			"updated_at": tx.NowFunc(),
		})
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update tank: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("tank %d: %w", tank.ID, domain.ErrNotFound)
		}
		return []uint{tank.ID}, nil
	})
}

// SaveTankLevels writes the derived stock columns only.
func (r *GormRepository) SaveTankLevels(ctx context.Context, tank *domain.Tank) (err error) {
	ctx, span := startSpan(ctx, "repository.SaveTankLevels",
		tankAttr(tank.ID),
		attribute.String("tank.current_stock", tank.CurrentStock.String()),
	)
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).Model(&domain.Tank{}).Where("id = ?", tank.ID).UpdateColumns(map[string]interface{}{
		"current_stock":   tank.CurrentStock,
		"fill_percentage": tank.FillPercentage,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to save tank levels: %w", err)
	}
	return nil
}

// DeleteTank removes a tank that no receipt or refueling references.
func (r *GormRepository) DeleteTank(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "repository.DeleteTank", tankAttr(id))
	defer func() { endSpan(span, err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var receipts, refuelings int64
		if err := tx.Model(&domain.Receipt{}).Where("tank_id = ?", id).Count(&receipts).Error; err != nil {
			return fmt.Errorf("failed to count receipts: %w", err)
		}
		if err := tx.Model(&domain.Refueling{}).Where("tank_id = ?", id).Count(&refuelings).Error; err != nil {
			return fmt.Errorf("failed to count refuelings: %w", err)
		}
		if receipts > 0 || refuelings > 0 {
			return fmt.Errorf("tank %d is referenced by %d receipt(s) and %d refueling(s): %w",
				id, receipts, refuelings, domain.ErrReferentialIntegrity)
		}

		res := tx.Delete(&domain.Tank{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete tank: %w", translate(res.Error))
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("tank %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

// FirstActiveTank returns the active tank with the lowest id.
func (r *GormRepository) FirstActiveTank(ctx context.Context) (_ *domain.Tank, err error) {
	ctx, span := startSpan(ctx, "repository.FirstActiveTank")
	defer func() { endSpan(span, err) }()

	var tank domain.Tank
	err = r.db.WithContext(ctx).Where("active = ?", true).Order("id ASC").First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("active tank: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active tank: %w", err)
	}
	return &tank, nil
}

// Receipts

func (r *GormRepository) CreateReceipt(ctx context.Context, receipt *domain.Receipt) (err error) {
	ctx, span := startSpan(ctx, "repository.CreateReceipt",
		tankAttr(receipt.TankID),
		attribute.String("receipt.liters", receipt.Liters.String()),
	)
	defer func() { endSpan(span, err) }()

	row := *receipt
	err = r.write(ctx, func(tx *gorm.DB) ([]uint, error) {
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return nil, fmt.Errorf("failed to create receipt: %w", translate(err))
		}
		return []uint{row.TankID}, nil
	})
	if err != nil {
		return err
	}
	*receipt = row
	span.SetAttributes(attribute.Int("receipt.id", int(receipt.ID)))
	return nil
}

func (r *GormRepository) FindReceipt(ctx context.Context, id uint) (_ *domain.Receipt, err error) {
	ctx, span := startSpan(ctx, "repository.FindReceipt", attribute.Int("receipt.id", int(id)))
	defer func() { endSpan(span, err) }()

	var receipt domain.Receipt
	if err := r.db.WithContext(ctx).First(&receipt, id).Error; err != nil {
		return nil, notFound(err, "receipt", id)
	}
	return &receipt, nil
}

func (r *GormRepository) ListReceipts(ctx context.Context, filter domain.ReceiptFilter) (_ []domain.Receipt, err error) {
	ctx, span := startSpan(ctx, "repository.ListReceipts",
		attribute.Int("query.limit", filter.Limit),
		attribute.Int("query.offset", filter.Offset),
	)
	defer func() { endSpan(span, err) }()

	q := r.db.WithContext(ctx).Model(&domain.Receipt{})
	if filter.TankID != 0 {
		q = q.Where("tank_id = ?", filter.TankID)
	}
	if filter.Reference != "" {
		q = whereContains(q, "reference", filter.Reference)
	}
	q = paginate(q, filter.Limit, filter.Offset)

	var receipts []domain.Receipt
	if err := q.Order("received_at DESC").Order("id DESC").Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	span.SetAttributes(attribute.Int("result.count", len(receipts)))
	return receipts, nil
}

func (r *GormRepository) DeleteReceipt(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "repository.DeleteReceipt", attribute.Int("receipt.id", int(id)))
	defer func() { endSpan(span, err) }()

	return r.write(ctx, func(tx *gorm.DB) ([]uint, error) {
		var receipt domain.Receipt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&receipt, id).Error; err != nil {
			return nil, notFound(err, "receipt", id)
		}
		if err := tx.Delete(&domain.Receipt{}, id).Error; err != nil {
			return nil, fmt.Errorf("failed to delete receipt: %w", err)
		}
		return []uint{receipt.TankID}, nil
	})
}

// CountReceiptsByReference counts receipts whose reference contains fragment.
func (r *GormRepository) CountReceiptsByReference(ctx context.Context, fragment string) (_ int64, err error) {
	ctx, span := startSpan(ctx, "repository.CountReceiptsByReference", attribute.String("query.reference", fragment))
	defer func() { endSpan(span, err) }()

	var count int64
	q := whereContains(r.db.WithContext(ctx).Model(&domain.Receipt{}), "reference", fragment)
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count receipts: %w", err)
	}
	return count, nil
}

func (r *GormRepository) SumReceiptLiters(ctx context.Context, tankID uint) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&domain.Receipt{}).Where("tank_id = ?", tankID)
	sum, err := sumLiters(q)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum receipts: %w", err)
	}
	return sum, nil
}

// Refuelings

func (r *GormRepository) CreateRefueling(ctx context.Context, refueling *domain.Refueling) (err error) {
	ctx, span := startSpan(ctx, "repository.CreateRefueling",
		tankAttr(refueling.TankID),
		attribute.String("refueling.equipment", refueling.Equipment),
		attribute.String("refueling.status", string(refueling.Status)),
	)
	defer func() { endSpan(span, err) }()

	row := *refueling
	err = r.write(ctx, func(tx *gorm.DB) ([]uint, error) {
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return nil, fmt.Errorf("failed to create refueling: %w", translate(err))
		}
		return []uint{row.TankID}, nil
	})
	if err != nil {
		return err
	}
	*refueling = row
	span.SetAttributes(attribute.Int("refueling.id", int(refueling.ID)))
	return nil
}

func (r *GormRepository) FindRefueling(ctx context.Context, id uint) (_ *domain.Refueling, err error) {
	ctx, span := startSpan(ctx, "repository.FindRefueling", attribute.Int("refueling.id", int(id)))
	defer func() { endSpan(span, err) }()

	var refueling domain.Refueling
	if err := r.db.WithContext(ctx).First(&refueling, id).Error; err != nil {
		return nil, notFound(err, "refueling", id)
	}
	return &refueling, nil
}

func (r *GormRepository) LockRefueling(ctx context.Context, id uint) (_ *domain.Refueling, err error) {
	ctx, span := startSpan(ctx, "repository.LockRefueling", attribute.Int("refueling.id", int(id)))
	defer func() { endSpan(span, err) }()

	var refueling domain.Refueling
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&refueling, id).Error; err != nil {
		return nil, notFound(err, "refueling", id)
	}
	return &refueling, nil
}

func (r *GormRepository) ListRefuelings(ctx context.Context, filter domain.RefuelingFilter) (_ []domain.Refueling, err error) {
	ctx, span := startSpan(ctx, "repository.ListRefuelings",
		attribute.Int("query.limit", filter.Limit),
		attribute.Int("query.offset", filter.Offset),
	)
	defer func() { endSpan(span, err) }()

	q := r.db.WithContext(ctx).Model(&domain.Refueling{})
	if filter.TankID != 0 {
		q = q.Where("tank_id = ?", filter.TankID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Equipment != "" {
		q = q.Where("equipment = ?", filter.Equipment)
	}
	q = paginate(q, filter.Limit, filter.Offset)

	var refuelings []domain.Refueling
	if err := q.Order("refueled_at DESC").Order("id DESC").Find(&refuelings).Error; err != nil {
		return nil, fmt.Errorf("failed to list refuelings: %w", err)
	}
	span.SetAttributes(attribute.Int("result.count", len(refuelings)))
	return refuelings, nil
}

// UpdateRefueling saves every column of refueling. The ledgers of the
// previous and the new tank are both re-run.
func (r *GormRepository) UpdateRefueling(ctx context.Context, refueling *domain.Refueling) (err error) {
	ctx, span := startSpan(ctx, "repository.UpdateRefueling",
		attribute.Int("refueling.id", int(refueling.ID)),
		attribute.String("refueling.status", string(refueling.Status)),
	)
	defer func() { endSpan(span, err) }()

	row := *refueling
	err = r.write(ctx, func(tx *gorm.DB) ([]uint, error) {
		var previous domain.Refueling
		if err := tx.Select("id", "tank_id").First(&previous, row.ID).Error; err != nil {
			return nil, notFound(err, "refueling", row.ID)
		}
		if err := tx.Omit(clause.Associations, "CreatedAt").Save(&row).Error; err != nil {
			return nil, fmt.Errorf("failed to update refueling: %w", translate(err))
		}
		return []uint{previous.TankID, row.TankID}, nil
	})
	if err != nil {
		return err
	}
	*refueling = row
	return nil
}

func (r *GormRepository) DeleteRefueling(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "repository.DeleteRefueling", attribute.Int("refueling.id", int(id)))
	defer func() { endSpan(span, err) }()

	return r.write(ctx, func(tx *gorm.DB) ([]uint, error) {
		var refueling domain.Refueling
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&refueling, id).Error; err != nil {
			return nil, notFound(err, "refueling", id)
		}
		if err := tx.Delete(&domain.Refueling{}, id).Error; err != nil {
			return nil, fmt.Errorf("failed to delete refueling: %w", err)
		}
		return []uint{refueling.TankID}, nil
	})
}

func (r *GormRepository) SumConfirmedRefuelingLiters(ctx context.Context, tankID uint) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&domain.Refueling{}).
		Where("tank_id = ? AND status = ?", tankID, domain.StatusConfirmed)
	sum, err := sumLiters(q)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum refuelings: %w", err)
	}
	return sum, nil
}

// Sequences and events

// NextSequenceValue returns the current value of the code's counter and
// advances it. The counter row stays locked until the caller's transaction
// ends, so a rolled back caller does not consume the value.
func (r *GormRepository) NextSequenceValue(ctx context.Context, code string) (value int64, err error) {
	ctx, span := startSpan(ctx, "repository.NextSequenceValue", attribute.String("sequence.code", code))
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := domain.Sequence{Code: code, NextValue: 1}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to seed sequence: %w", err)
		}

		var seq domain.Sequence
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seq, "code = ?", code).Error; err != nil {
			return fmt.Errorf("failed to lock sequence: %w", err)
		}
		value = seq.NextValue

		return tx.Model(&domain.Sequence{}).Where("code = ?", code).Updates(map[string]interface{}{
			"next_value": value + 1,
			"updated_at": tx.NowFunc(),
		}).Error
	})
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int64("sequence.value", value))
	return value, nil
}

func (r *GormRepository) RecordReceivingEvent(ctx context.Context, record *domain.ReceivingEventRecord) (_ bool, err error) {
	ctx, span := startSpan(ctx, "repository.RecordReceivingEvent", attribute.String("event.id", record.EventID))
	defer func() { endSpan(span, err) }()

	row := *record
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to record receiving event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	*record = row
	return true, nil
}

func sumLiters(q *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := q.Select("COALESCE(SUM(liters), 0)").Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum.Round(2), nil
}

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereContains matches column against fragment as a literal substring.
func whereContains(q *gorm.DB, column, fragment string) *gorm.DB {
	return q.Where(column+` LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(fragment)+"%")
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %d: %w", entity, id, err)
}

// translate maps driver errors onto the domain taxonomy.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation, pqUniqueViolation:
			return fmt.Errorf("%s: %w", pqErr.Message, domain.ErrReferentialIntegrity)
		}
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("duplicate key: %w", domain.ErrReferentialIntegrity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("foreign key violated: %w", domain.ErrReferentialIntegrity)
	}
	return err
}

var _ domain.Repository = (*GormRepository)(nil)
