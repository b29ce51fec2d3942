package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	expense.ExpenseDate = civilDate(expense.ExpenseDate)
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uint) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	expense.ExpenseDate = civilDate(expense.ExpenseDate)
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, error) {
	var expenses []entity.Expense
	query := r.db.WithContext(ctx)

	if params.Date != nil {
		day := civilDate(*params.Date)
		query = query.Where("expense_date = ?", day)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	err := query.Order("expense_date DESC, id DESC").Find(&expenses).Error
	return expenses, err
}

type categoryTotalRow struct {
	Category string
	Total    decimal.NullDecimal
	Count    int64
}

func (r *expenseRepository) CategoryTotals(ctx context.Context, day time.Time) ([]domainRepo.CategoryTotal, error) {
	var rows []categoryTotalRow
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Where("expense_date = ?", civilDate(day)).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make([]domainRepo.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = domainRepo.CategoryTotal{
			Category: row.Category,
			Total:    money(row.Total),
			Count:    row.Count,
		}
	}
	return totals, nil
}
