package repository

import (
	"testing"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/sangkips/shopkeeper-api/internal/domain/settlement"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with every table migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func seedCreditSale(t *testing.T, db *gorm.DB, number, customer, total, paid string, status settlement.Status, created time.Time) *entity.Sale {
	t.Helper()
	sale := &entity.Sale{
		BillNumber:    number,
		CustomerName:  customer,
		TotalAmount:   dec(total),
		PaymentMethod: enum.PaymentMethodCash,
		BillType:      enum.BillTypeCredit,
		IsCredit:      true,
		PaymentStatus: status,
		PaidAmount:    dec(paid),
		CreatedAt:     created,
	}
	require.NoError(t, db.Create(sale).Error)
	return sale
}

func seedSupplierBill(t *testing.T, db *gorm.DB, number, supplier, total string, billDate time.Time) *entity.SupplierBill {
	t.Helper()
	bill := &entity.SupplierBill{
		SupplierName: supplier,
		BillNumber:   number,
		BillDate:     billDate,
		TotalAmount:  dec(total),
		Status:       settlement.StatusUnpaid,
	}
	require.NoError(t, db.Create(bill).Error)
	return bill
}
