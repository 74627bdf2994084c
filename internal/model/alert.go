package model

import "time"

type AlertLevel string

const (
	AlertLevelInfo     AlertLevel = "info"
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelCritical AlertLevel = "critical"
)

// InventoryAlert records a low-stock condition for a product. Alerts stay
// open until a user resolves them.
type InventoryAlert struct {
	ID         string     `json:"id"`
	ProductID  int64      `json:"productId"`
	Message    string     `json:"message"`
	Level      AlertLevel `json:"level"`
	AlertedAt  time.Time  `json:"alertedAt"`
	IsResolved bool       `json:"isResolved"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy string     `json:"resolvedBy,omitempty"`
}

type ResolveAlertRequest struct {
	ResolvedBy string `json:"resolvedBy" binding:"required"`
}
