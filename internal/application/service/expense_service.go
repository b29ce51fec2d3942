package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultExpenseCategory = "General"

// ExpenseService records day-to-day shop spending
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	clock       shopClock
	logger      *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, loc *time.Location, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, clock: newShopClock(loc), logger: logger}
}

// ExpenseInput represents the create expense input
type ExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        *time.Time
}

// CreateExpense records an expense, dated today unless a date is given
func (s *ExpenseService) CreateExpense(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperror.NewBadRequestError("Description is required")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewUnprocessableError("Amount must be a positive number")
	}

	expense := &entity.Expense{
		Description: description,
		Amount:      input.Amount.Round(2),
		Category:    categoryOrDefault(input.Category),
		ExpenseDate: dateOnly(s.clock.dateOr(input.Date)),
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses returns expenses newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) ([]entity.Expense, error) {
	expenses, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []entity.Expense{}
	}
	return expenses, nil
}

// UpdateExpenseInput is a partial expense update
type UpdateExpenseInput struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	Date        *time.Time
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, id uint, input *UpdateExpenseInput) (*entity.Expense, error) {
	expense, err := s.getExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		d := strings.TrimSpace(*input.Description)
		if d == "" {
			return nil, apperror.NewBadRequestError("Description is required")
		}
		expense.Description = d
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, apperror.NewUnprocessableError("Amount must be a positive number")
		}
		expense.Amount = input.Amount.Round(2)
	}
	if input.Category != nil {
		expense.Category = categoryOrDefault(*input.Category)
	}
	if input.Date != nil {
		expense.ExpenseDate = dateOnly(*input.Date)
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id uint) error {
	if _, err := s.getExpense(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}

// DailyExpenseSummary is a day's spending grouped by category
type DailyExpenseSummary struct {
	Date       string                     `json:"date"`
	Categories []repository.CategoryTotal `json:"categories"`
	Total      decimal.Decimal            `json:"total"`
}

// DailySummary groups a day's expenses by category, today when day is nil
func (s *ExpenseService) DailySummary(ctx context.Context, day *time.Time) (*DailyExpenseSummary, error) {
	d := dateOnly(s.clock.dateOr(day))
	totals, err := s.expenseRepo.CategoryTotals(ctx, d)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []repository.CategoryTotal{}
	}

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	return &DailyExpenseSummary{Date: d.Format("2006-01-02"), Categories: totals, Total: sum}, nil
}

func (s *ExpenseService) getExpense(ctx context.Context, id uint) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

func categoryOrDefault(c string) string {
	if c = strings.TrimSpace(c); c != "" {
		return c
	}
	return defaultExpenseCategory
}
