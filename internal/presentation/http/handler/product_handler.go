package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/application/service"
	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/response"
	"github.com/sangkips/shopkeeper-api/pkg/pagination"
)

// ProductHandler handles product and stock HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		Category:  filter.Category,
		LowStock:  filter.LowStock,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Products retrieved successfully", result)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
// @Summary Create Product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateProductRequest true "Product"
// @Success 201 {object} response.APIResponse
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UnitPrice.Value.IsNegative() {
		response.BadRequest(c, "unit_price cannot be negative")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:         req.Name,
		Category:     req.Category,
		UnitPrice:    req.UnitPrice.Value,
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UnitPrice.Valid && req.UnitPrice.Value.IsNegative() {
		response.BadRequest(c, "unit_price cannot be negative")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Name:         req.Name,
		Category:     req.Category,
		UnitPrice:    req.UnitPrice.Ptr(),
		MinimumStock: req.MinimumStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// LowStock lists products at or below their minimum stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.LowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock products retrieved successfully", products)
}

// AddStock handles a stock receipt
func (h *ProductHandler) AddStock(c *gin.Context) {
	h.adjust(c, h.productService.AddStock, "Stock added successfully")
}

// RemoveStock handles a manual stock removal
func (h *ProductHandler) RemoveStock(c *gin.Context) {
	h.adjust(c, h.productService.RemoveStock, "Stock removed successfully")
}

type stockAdjustment func(ctx context.Context, id uint, quantity int, reason string) (*entity.Product, error)

func (h *ProductHandler) adjust(c *gin.Context, apply stockAdjustment, message string) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req request.StockAdjustmentRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := apply(c.Request.Context(), id, req.Quantity, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, product)
}

// StockHistory returns a product's movements, latest first
func (h *ProductHandler) StockHistory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	movements, err := h.productService.StockHistory(c.Request.Context(), id, queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock history retrieved successfully", movements)
}

// StockReport values the whole catalogue
func (h *ProductHandler) StockReport(c *gin.Context) {
	report, err := h.productService.StockReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock report generated successfully", report)
}
