package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	Category     string `json:"category" binding:"omitempty,max=100"`
	UnitPrice    Amount `json:"unit_price" binding:"required"`
	Quantity     int    `json:"quantity" binding:"min=0"`
	MinimumStock *int   `json:"minimum_stock" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	Category     *string `json:"category" binding:"omitempty,max=100"`
	UnitPrice    Amount  `json:"unit_price"`
	MinimumStock *int    `json:"minimum_stock" binding:"omitempty,min=0"`
}

// StockAdjustmentRequest adds or removes stock
type StockAdjustmentRequest struct {
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Reason   string `json:"reason" binding:"omitempty,max=255"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
