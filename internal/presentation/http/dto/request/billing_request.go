package request

import "github.com/sangkips/shopkeeper-api/internal/domain/enum"

// BillItemRequest is one line of a new bill. A product_id of 0 marks a
// manual line, which needs a name and unit_price.
type BillItemRequest struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name" binding:"omitempty,max=255"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	UnitPrice Amount `json:"unit_price" binding:"omitempty,decimal_gt0"`
}

// CreateBillRequest represents a new counter bill
type CreateBillRequest struct {
	CustomerName  string             `json:"customer_name" binding:"omitempty,max=255"`
	Items         []BillItemRequest  `json:"items" binding:"required,min=1,dive"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	CashAmount    Amount             `json:"cash_amount"`
	UPIAmount     Amount             `json:"upi_amount"`
	BillType      enum.BillType      `json:"bill_type" binding:"omitempty,bill_type"`
}

// PaymentRequest records money against a credit or supplier bill. Leaving
// payment_amount out asks for a full settlement.
type PaymentRequest struct {
	PaymentAmount RawAmount `json:"payment_amount"`
	PaymentDate   Date      `json:"payment_date"`
	Notes         string    `json:"notes" binding:"omitempty,max=1000"`
}
