package service

import (
	"context"
	"errors"

	"github.com/stocksmart/backend/internal/model"
)

var ErrSupplierNotFound = errors.New("supplier not found")

// SupplierStore is the persistence interface for suppliers.
type SupplierStore interface {
	GetAllSuppliers(ctx context.Context) ([]model.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*model.Supplier, error)
	InsertSupplier(ctx context.Context, supplier *model.Supplier) error
}

// SupplierService is a thin pass-through over the supplier store.
type SupplierService struct {
	store SupplierStore
}

func NewSupplierService(store SupplierStore) *SupplierService {
	return &SupplierService{store: store}
}

func (s *SupplierService) GetAll(ctx context.Context) ([]model.Supplier, error) {
	return s.store.GetAllSuppliers(ctx)
}

func (s *SupplierService) GetByID(ctx context.Context, id int64) (*model.Supplier, error) {
	return s.store.GetSupplier(ctx, id)
}

func (s *SupplierService) Add(ctx context.Context, supplier *model.Supplier) error {
	return s.store.InsertSupplier(ctx, supplier)
}
