package request

// AddSupplierBillRequest represents a purchase bill received from a supplier
type AddSupplierBillRequest struct {
	SupplierName string `json:"supplier_name" binding:"required,max=255"`
	BillNumber   string `json:"bill_number" binding:"required,max=100"`
	BillDate     Date   `json:"bill_date"`
	DueDate      Date   `json:"due_date"`
	TotalAmount  Amount `json:"total_amount" binding:"required,decimal_gt0"`
	Description  string `json:"description"`
}
