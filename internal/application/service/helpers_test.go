package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/database"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ist = time.FixedZone("IST", 5*3600+1800)

// fixedNow is 2024-03-10 11:00 in the shop zone
var fixedNow = time.Date(2024, time.March, 10, 5, 30, 0, 0, time.UTC)

type fixture struct {
	db        *gorm.DB
	billing   *BillingService
	credit    *CreditService
	supplier  *SupplierService
	products  *ProductService
	expenses  *ExpenseService
	dashboard *DashboardService
	maint     *MaintenanceService
	logs      *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
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

	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)
	saleRepo := repository.NewSaleRepository(db)
	productRepo := repository.NewProductRepository(db)

	f := &fixture{
		db:        db,
		billing:   NewBillingService(saleRepo, productRepo, ist, log),
		credit:    NewCreditService(saleRepo, repository.NewCreditLedger(db), ist, log),
		supplier:  NewSupplierService(repository.NewSupplierBillRepository(db), repository.NewSupplierLedger(db), ist, log),
		products:  NewProductService(productRepo, log),
		expenses:  NewExpenseService(repository.NewExpenseRepository(db), ist, log),
		dashboard: NewDashboardService(repository.NewReportRepository(db), ist, log),
		maint: NewMaintenanceService(repository.NewMaintenanceRepository(db), productRepo,
			repository.NewIdempotencyRepository(db), ist, log),
		logs: logs,
	}
	clock := func() time.Time { return fixedNow }
	f.billing.clock.now = clock
	f.credit.clock.now = clock
	f.supplier.clock.now = clock
	f.expenses.clock.now = clock
	f.dashboard.clock.now = clock
	f.maint.clock.now = clock
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func (f *fixture) product(t *testing.T, name string, qty int, price string) *entity.Product {
	t.Helper()
	p, err := f.products.CreateProduct(context.Background(), &CreateProductInput{
		Name: name, UnitPrice: dec(price), Quantity: qty,
	})
	require.NoError(t, err)
	return p
}

// creditBill raises a credit bill for one manual line and backdates it so
// FIFO order is deterministic
func (f *fixture) creditBill(t *testing.T, customer, total string, created time.Time) *entity.Sale {
	t.Helper()
	sale, err := f.billing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName: customer,
		BillType:     "CREDIT",
		Items:        []BillItemInput{{Name: "Goods", Quantity: 1, UnitPrice: decPtr(total)}},
	})
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&entity.Sale{}).Where("id = ?", sale.ID).Update("created_at", created).Error)
	return sale
}
