package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/config"
	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	applog "github.com/sangkips/shopkeeper-api/internal/infrastructure/logger"
	"github.com/sangkips/shopkeeper-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database. Timestamps are written in UTC
// whatever the driver, so range queries compare like with like.
func Open(cfg *config.DatabaseConfig, logLevel string, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:  applog.NewGormLogger(log, applog.GormLevel(logLevel), cfg.SlowThreshold),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.IsPostgres() {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), gormCfg)
	} else {
		db, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.SQLitePath)), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.IsPostgres() {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("Connected to database", zap.String("driver", db.Dialector.Name()))
	return db, nil
}

func sqliteDSN(path string) string {
	if path == "" || path == ":memory:" {
		return "file::memory:?cache=shared"
	}
	return "file:" + path + "?_busy_timeout=5000"
}

// Models lists every persisted entity in migration order
func Models() []any {
	return []any{
		&entity.User{},
		&entity.Product{},
		&entity.StockMovement{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.CreditPayment{},
		&entity.SupplierBill{},
		&entity.SupplierBillPayment{},
		&entity.Expense{},
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedUsers creates the admin and staff logins when they do not exist yet.
// Existing users are left untouched so password changes survive restarts.
func SeedUsers(db *gorm.DB, cfg *config.AuthConfig, log *zap.Logger) error {
	seeds := []struct {
		username, password, role, name string
	}{
		{cfg.AdminUsername, cfg.AdminPassword, entity.RoleAdmin, "Administrator"},
		{cfg.StaffUsername, cfg.StaffPassword, entity.RoleStaff, "Staff"},
	}

	for _, s := range seeds {
		if s.username == "" || s.password == "" {
			continue
		}

		var existing entity.User
		err := db.Where("username = ?", s.username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up user %s: %w", s.username, err)
		}

		hashed, err := utils.HashPassword(s.password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user := entity.User{
			Username: s.username,
			FullName: s.name,
			Password: hashed,
			Role:     s.role,
			Active:   true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", s.username, err)
		}
		log.Info("Seeded user", zap.String("username", s.username), zap.String("role", s.role))
	}
	return nil
}
