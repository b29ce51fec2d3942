package repository

import (
	"strings"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate takes row locks on dialects that support SELECT ... FOR UPDATE.
// SQLite serialises writers on its own and rejects the clause.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// CreditOnly restricts sale queries to credit bills
func CreditOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_credit = ?", true)
}

// CountedSales restricts sale queries to bills that count toward sales
// totals. Credit and replacement bills are left out.
func CountedSales(db *gorm.DB) *gorm.DB {
	return db.Where("bill_type = ?", enum.BillTypeRegular)
}

// Between filters column into the half-open range [from, to). Nil bounds are
// ignored. Bounds are compared in UTC, which is how timestamps are written.
func Between(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", from.UTC())
		}
		if to != nil {
			db = db.Where(column+" < ?", to.UTC())
		}
		return db
	}
}

// Search does a case-insensitive substring match on any of the columns.
// LOWER/LIKE is used instead of ILIKE so the query runs on SQLite as well.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// civilDate maps a calendar day to the UTC midnight used in DATE columns
func civilDate(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// money normalises an aggregated amount. SQLite sums NUMERIC columns as
// floats, so results are rounded back to two places; NULL becomes zero.
func money(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal.Round(2)
}
