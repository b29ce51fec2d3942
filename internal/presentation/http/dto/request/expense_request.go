package request

// ExpenseRequest represents a new expense
type ExpenseRequest struct {
	Description string `json:"description" binding:"required,max=255"`
	Amount      Amount `json:"amount" binding:"required,decimal_gt0"`
	Category    string `json:"category" binding:"omitempty,max=100"`
	ExpenseDate Date   `json:"expense_date"`
}

// UpdateExpenseRequest is a partial expense update
type UpdateExpenseRequest struct {
	Description *string `json:"description" binding:"omitempty,min=1,max=255"`
	Amount      Amount  `json:"amount" binding:"omitempty,decimal_gt0"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	ExpenseDate Date    `json:"expense_date"`
}
