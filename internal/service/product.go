package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/stocksmart/backend/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStore is the persistence interface for products.
type ProductStore interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	InsertProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
	GetLowStock(ctx context.Context) ([]model.Product, error)
}

// ProductService wraps the product store and raises a low-stock alert when a
// write leaves a product at or below its threshold.
type ProductService struct {
	store  ProductStore
	alerts *AlertService
}

func NewProductService(store ProductStore, alerts *AlertService) *ProductService {
	return &ProductService{store: store, alerts: alerts}
}

func (s *ProductService) GetAll(ctx context.Context) ([]model.Product, error) {
	return s.store.GetAll(ctx)
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return s.store.GetByID(ctx, id)
}

// Add inserts a new product. A product created already at or below its
// threshold triggers an alert immediately.
func (s *ProductService) Add(ctx context.Context, product *model.Product) error {
	if err := s.store.InsertProduct(ctx, product); err != nil {
		return err
	}

	if product.Quantity <= product.LowStockThreshold {
		s.raiseLowStockAlert(ctx, product)
	}
	return nil
}

// Update replaces a product. An alert fires only when the stock level
// crosses the threshold downward, not on every write below it.
func (s *ProductService) Update(ctx context.Context, product *model.Product) error {
	existing, err := s.store.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}

	crossed := existing.Quantity > existing.LowStockThreshold &&
		product.Quantity <= product.LowStockThreshold

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return err
	}

	if crossed {
		s.raiseLowStockAlert(ctx, product)
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *ProductService) GetLowStock(ctx context.Context) ([]model.Product, error) {
	return s.store.GetLowStock(ctx)
}

// Alert failures must not fail the stock write itself.
func (s *ProductService) raiseLowStockAlert(ctx context.Context, product *model.Product) {
	if _, err := s.alerts.GenerateLowStockAlert(ctx, product); err != nil {
		log.Printf("Failed to generate low stock alert (product_id=%d): %v", product.ID, err)
	}
}

func lowStockMessage(product *model.Product) string {
	return fmt.Sprintf("Stock level for %q (SKU %s) is at %d, below threshold %d",
		product.Name, product.SKU, product.Quantity, product.LowStockThreshold)
}
