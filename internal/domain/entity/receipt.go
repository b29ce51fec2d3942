package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ReceiptItem is a single line item on a sale receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// ReceiptAllocation is one bill touched by a payment, printed on payment slips.
type ReceiptAllocation struct {
	BillNumber string          `json:"bill_number"`
	Applied    decimal.Decimal `json:"applied"`
	Status     string          `json:"status"`
	Balance    decimal.Decimal `json:"balance"`
}

// Receipt is a printable value composed from a sale or a payment at print
// time. It is never stored.
type Receipt struct {
	Header        ReceiptHeader       `json:"header"`
	Title         string              `json:"title"`
	BillNumber    string              `json:"bill_number,omitempty"`
	Date          string              `json:"date"`
	Cashier       string              `json:"cashier,omitempty"`
	Party         string              `json:"party,omitempty"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Items         []ReceiptItem       `json:"items,omitempty"`
	Allocations   []ReceiptAllocation `json:"allocations,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Paid          decimal.Decimal     `json:"paid"`
	Due           decimal.Decimal     `json:"due"`
	Footer        string              `json:"footer,omitempty"`
}
