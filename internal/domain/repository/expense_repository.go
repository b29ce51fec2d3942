package repository

import (
	"context"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uint) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, error)
	// CategoryTotals groups a day's expenses by category, largest first
	CategoryTotals(ctx context.Context, day time.Time) ([]CategoryTotal, error)
}

// ExpenseFilterParams contains filtering parameters for expense queries
type ExpenseFilterParams struct {
	Date     *time.Time
	Category string
	Limit    int
}

// CategoryTotal is the sum spent in one expense category
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}
