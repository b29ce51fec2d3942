package service

import (
	"context"
	"strings"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/enum"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"github.com/sangkips/shopkeeper-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 50

// ProductService handles the catalogue and stock levels
type ProductService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, logger: logger}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name         string
	Category     string
	UnitPrice    decimal.Decimal
	Quantity     int
	MinimumStock *int
}

// CreateProduct creates a new product. The opening quantity is recorded as
// a stock movement.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.UnitPrice.IsNegative() || input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Price and quantity cannot be negative")
	}

	existing, err := s.productRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product already exists")
	}

	minimum := entity.DefaultMinimumStock
	if input.MinimumStock != nil {
		minimum = *input.MinimumStock
	}

	product := &entity.Product{
		Name:         name,
		Category:     strings.TrimSpace(input.Category),
		UnitPrice:    input.UnitPrice.Round(2),
		MinimumStock: minimum,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if input.Quantity > 0 {
		if _, err := s.productRepo.AdjustStock(ctx, product.ID, enum.MovementTypeAdd, input.Quantity, "Opening stock"); err != nil {
			return nil, err
		}
		product.Quantity = input.Quantity
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents a partial product update. Quantity is
// changed through stock movements only.
type UpdateProductInput struct {
	Name         *string
	Category     *string
	UnitPrice    *decimal.Decimal
	MinimumStock *int
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewBadRequestError("Product name is required")
		}
		if name != product.Name {
			existing, err := s.productRepo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, apperror.NewConflictError("Product already exists")
			}
		}
		product.Name = name
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.UnitPrice = input.UnitPrice.Round(2)
	}
	if input.MinimumStock != nil {
		product.MinimumStock = *input.MinimumStock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product and its stock history
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// LowStock returns products at or below their minimum, lowest first
func (s *ProductService) LowStock(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// AddStock increases a product's quantity
func (s *ProductService) AddStock(ctx context.Context, id uint, quantity int, reason string) (*entity.Product, error) {
	return s.adjust(ctx, id, enum.MovementTypeAdd, quantity, reason)
}

// RemoveStock decreases a product's quantity, refusing to go below zero
func (s *ProductService) RemoveStock(ctx context.Context, id uint, quantity int, reason string) (*entity.Product, error) {
	return s.adjust(ctx, id, enum.MovementTypeRemove, quantity, reason)
}

func (s *ProductService) adjust(ctx context.Context, id uint, movement enum.MovementType, quantity int, reason string) (*entity.Product, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be greater than zero")
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.productRepo.AdjustStock(ctx, id, movement, quantity, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewBadRequestError("Insufficient stock for " + product.Name)
	}

	s.logger.Info("stock adjusted",
		zap.Uint("product_id", id),
		zap.String("movement", movement.String()),
		zap.Int("quantity", quantity),
	)
	return s.GetProduct(ctx, id)
}

// StockHistory returns a product's movements, latest first
func (s *ProductService) StockHistory(ctx context.Context, id uint, limit int) ([]entity.StockMovement, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.productRepo.Movements(ctx, id, limit)
}

// StockReportItem is one product row of the stock report
type StockReportItem struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Quantity     int             `json:"quantity"`
	MinimumStock int             `json:"minimum_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Value        decimal.Decimal `json:"value"`
	Status       string          `json:"status"`
}

// StockReport values the whole catalogue
type StockReport struct {
	Items         []StockReportItem `json:"items"`
	TotalProducts int               `json:"total_products"`
	LowStockCount int               `json:"low_stock_count"`
	TotalValue    decimal.Decimal   `json:"total_value"`
}

// StockReport returns per-product valuation with LOW/OK flags, by name
func (s *ProductService) StockReport(ctx context.Context) (*StockReport, error) {
	products, _, err := s.productRepo.List(ctx, &repository.ProductFilterParams{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		return nil, err
	}

	report := &StockReport{Items: make([]StockReportItem, 0, len(products)), TotalValue: decimal.Zero}
	for i := range products {
		p := &products[i]
		status := "OK"
		if p.IsLowStock() {
			status = "LOW"
			report.LowStockCount++
		}
		value := p.StockValue().Round(2)
		report.TotalValue = report.TotalValue.Add(value)
		report.Items = append(report.Items, StockReportItem{
			ID:           p.ID,
			Name:         p.Name,
			Category:     p.Category,
			Quantity:     p.Quantity,
			MinimumStock: p.MinimumStock,
			UnitPrice:    p.UnitPrice,
			Value:        value,
			Status:       status,
		})
	}
	report.TotalProducts = len(report.Items)
	return report, nil
}
