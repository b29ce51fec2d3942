package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *gorm.DB) domainRepo.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) PurgeSales(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	old := func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&entity.Sale{}).Where("created_at < ?", cutoff.UTC())
	}

	var count int64
	if err := old(r.db.WithContext(ctx)).Count(&count).Error; err != nil {
		return 0, err
	}
	if dryRun || count == 0 {
		return count, nil
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := old(tx).Select("id")
		if err := tx.Where("transaction_id IN (?)", ids).Delete(&entity.CreditPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("transaction_id IN (?)", ids).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("created_at < ?", cutoff.UTC()).Delete(&entity.Sale{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

func (r *maintenanceRepository) PurgeSupplierBills(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	day := civilDate(cutoff)

	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.SupplierBill{}).Where("bill_date < ?", day).Count(&count).Error; err != nil {
		return 0, err
	}
	if dryRun || count == 0 {
		return count, nil
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := tx.Model(&entity.SupplierBill{}).Select("id").Where("bill_date < ?", day)
		if err := tx.Where("bill_id IN (?)", ids).Delete(&entity.SupplierBillPayment{}).Error; err != nil {
			return err
		}
		result := tx.Where("bill_date < ?", day).Delete(&entity.SupplierBill{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

func (r *maintenanceRepository) PurgeExpenses(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	day := civilDate(cutoff)
	if dryRun {
		var count int64
		err := r.db.WithContext(ctx).Model(&entity.Expense{}).Where("expense_date < ?", day).Count(&count).Error
		return count, err
	}
	result := r.db.WithContext(ctx).Where("expense_date < ?", day).Delete(&entity.Expense{})
	return result.RowsAffected, result.Error
}

var countedTables = []schema.Tabler{
	&entity.Sale{},
	&entity.SaleItem{},
	&entity.CreditPayment{},
	&entity.SupplierBill{},
	&entity.SupplierBillPayment{},
	&entity.Product{},
	&entity.StockMovement{},
	&entity.Expense{},
}

func (r *maintenanceRepository) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(countedTables))
	for _, model := range countedTables {
		var n int64
		if err := r.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", model.TableName(), err)
		}
		counts[model.TableName()] = n
	}
	return counts, nil
}
