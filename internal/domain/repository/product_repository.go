package repository

import (
	"context"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/sangkips/shopkeeper-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete removes the product together with its stock movements
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// GetLowStock returns products at or below their minimum, lowest quantity first
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// AdjustStock applies a signed change and records the movement atomically.
	// It returns (false, nil) when a removal would take stock below zero.
	AdjustStock(ctx context.Context, productID uint, movement enum.MovementType, quantity int, reason string) (bool, error)
	// Movements returns a product's stock history, latest first
	Movements(ctx context.Context, productID uint, limit int) ([]entity.StockMovement, error)
	// DeleteInactive removes products with no stock and their movements
	DeleteInactive(ctx context.Context) (int64, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}
