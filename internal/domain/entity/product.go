package entity

import (
	"time"

	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DefaultMinimumStock is the low-stock threshold applied when none is given
const DefaultMinimumStock = 5

// Product represents a catalogue item kept in stock
type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Category     string          `gorm:"size:100;index" json:"category,omitempty"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity     int             `gorm:"not null;default:0" json:"quantity"`
	MinimumStock int             `gorm:"not null;default:5" json:"minimum_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relationships
	Movements []StockMovement `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the quantity is at or below the minimum
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinimumStock
}

// StockValue returns quantity times unit price
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// StockMovement records a single change to a product's quantity
type StockMovement struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	ProductID    uint              `gorm:"not null;index" json:"product_id"`
	MovementType enum.MovementType `gorm:"size:10;not null" json:"movement_type"`
	Quantity     int               `gorm:"not null" json:"quantity"`
	Reason       string            `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt    time.Time         `gorm:"index" json:"created_at"`
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
