package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/application/service"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/response"
)

// ExpenseHandler handles the shop's expense log
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.ExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), &service.ExpenseInput{
		Description: req.Description,
		Amount:      req.Amount.Value,
		Category:    req.Category,
		Date:        req.ExpenseDate.Ptr(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Expense recorded successfully", expense)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), &repository.ExpenseFilterParams{
		Date:     date,
		Category: c.Query("category"),
		Limit:    queryInt(c, "limit", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expenses retrieved successfully", expenses)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, &service.UpdateExpenseInput{
		Description: req.Description,
		Amount:      req.Amount.Ptr(),
		Category:    req.Category,
		Date:        req.ExpenseDate.Ptr(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense updated successfully", expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense deleted successfully", nil)
}

// DailySummary groups a day's spending by category
func (h *ExpenseHandler) DailySummary(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	summary, err := h.expenseService.DailySummary(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense summary retrieved successfully", summary)
}
