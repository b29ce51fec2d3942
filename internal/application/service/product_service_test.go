package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.product(t, "Rice", 12, "58.499")
	assert.Equal(t, entity.DefaultMinimumStock, p.MinimumStock)
	assert.Equal(t, 12, p.Quantity)
	assert.True(t, dec("58.5").Equal(p.UnitPrice))

	history, err := f.products.StockHistory(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Opening stock", history[0].Reason)

	_, err = f.products.CreateProduct(ctx, &CreateProductInput{Name: "Rice", UnitPrice: dec("1")})
	assertAppError(t, err, http.StatusConflict)

	_, err = f.products.CreateProduct(ctx, &CreateProductInput{Name: " "})
	assertAppError(t, err, http.StatusBadRequest)
}

func TestStockAdjustments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Oil", 3, "150")

	got, err := f.products.AddStock(ctx, p.ID, 4, "Restock")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	got, err = f.products.RemoveStock(ctx, p.ID, 2, "Damaged")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)

	_, err = f.products.RemoveStock(ctx, p.ID, 6, "")
	assertAppError(t, err, http.StatusBadRequest)

	_, err = f.products.AddStock(ctx, p.ID, 0, "")
	assertAppError(t, err, http.StatusBadRequest)

	_, err = f.products.AddStock(ctx, 404, 1, "")
	assertAppError(t, err, http.StatusNotFound)

	history, err := f.products.StockHistory(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Tea", 1, "10")
	f.product(t, "Coffee", 1, "10")

	name := "Coffee"
	_, err := f.products.UpdateProduct(ctx, p.ID, &UpdateProductInput{Name: &name})
	assertAppError(t, err, http.StatusConflict)

	price := dec("12.5")
	minimum := 2
	got, err := f.products.UpdateProduct(ctx, p.ID, &UpdateProductInput{UnitPrice: &price, MinimumStock: &minimum})
	require.NoError(t, err)
	assert.True(t, price.Equal(got.UnitPrice))
	assert.Equal(t, 2, got.MinimumStock)

	require.NoError(t, f.products.DeleteProduct(ctx, p.ID))
	assertAppError(t, f.products.DeleteProduct(ctx, p.ID), http.StatusNotFound)
}

func TestLowStockAndReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "Salt", 2, "20")
	f.product(t, "Flour", 40, "35")
	f.product(t, "Jam", 0, "90")

	low, err := f.products.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Jam", low[0].Name)

	report, err := f.products.StockReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalProducts)
	assert.Equal(t, 2, report.LowStockCount)
	assert.True(t, dec("1440").Equal(report.TotalValue))
	assert.Equal(t, "Flour", report.Items[0].Name)
	assert.Equal(t, "OK", report.Items[0].Status)

	page, err := f.products.ListProducts(ctx, &repository.ProductFilterParams{Search: "fl"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)
}
