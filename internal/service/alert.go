package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stocksmart/backend/internal/model"
)

var (
	ErrAlertNotFound        = errors.New("alert not found")
	ErrAlertAlreadyResolved = errors.New("alert already resolved")
)

// AlertStore is the persistence interface for inventory alerts.
type AlertStore interface {
	InsertAlert(ctx context.Context, alert *model.InventoryAlert) error
	GetAlert(ctx context.Context, id string) (*model.InventoryAlert, error)
	ListAlerts(ctx context.Context, includeResolved bool) ([]model.InventoryAlert, error)
	UpdateAlert(ctx context.Context, alert *model.InventoryAlert) error
}

// AlertService creates and resolves low-stock alerts.
type AlertService struct {
	store AlertStore
}

func NewAlertService(store AlertStore) *AlertService {
	return &AlertService{store: store}
}

// GenerateLowStockAlert records an alert for the product. Stock fully run
// out escalates the level to critical.
func (s *AlertService) GenerateLowStockAlert(ctx context.Context, product *model.Product) (*model.InventoryAlert, error) {
	level := model.AlertLevelWarning
	if product.Quantity == 0 {
		level = model.AlertLevelCritical
	}

	alert := &model.InventoryAlert{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Message:   lowStockMessage(product),
		Level:     level,
		AlertedAt: time.Now(),
	}

	if err := s.store.InsertAlert(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *AlertService) List(ctx context.Context, includeResolved bool) ([]model.InventoryAlert, error) {
	return s.store.ListAlerts(ctx, includeResolved)
}

// Resolve marks an alert handled, recording who resolved it and when.
func (s *AlertService) Resolve(ctx context.Context, id, resolvedBy string) (*model.InventoryAlert, error) {
	alert, err := s.store.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.IsResolved {
		return nil, ErrAlertAlreadyResolved
	}

	now := time.Now()
	alert.IsResolved = true
	alert.ResolvedAt = &now
	alert.ResolvedBy = resolvedBy

	if err := s.store.UpdateAlert(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}
