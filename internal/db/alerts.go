package db

import (
	"context"

	"github.com/stocksmart/backend/internal/model"
	"github.com/stocksmart/backend/internal/service"
)

func (db *Postgres) EnsureAlertSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS inventory_alerts (
			id TEXT PRIMARY KEY,
			product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			message TEXT NOT NULL DEFAULT '',
			level TEXT NOT NULL DEFAULT 'warning',
			alerted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			is_resolved BOOLEAN NOT NULL DEFAULT FALSE,
			resolved_at TIMESTAMPTZ,
			resolved_by TEXT NOT NULL DEFAULT ''
		)
		`,
		`CREATE INDEX IF NOT EXISTS inventory_alerts_product_id_idx ON inventory_alerts(product_id)`,
		`CREATE INDEX IF NOT EXISTS inventory_alerts_unresolved_idx ON inventory_alerts(alerted_at DESC) WHERE NOT is_resolved`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) InsertAlert(ctx context.Context, alert *model.InventoryAlert) error {
	query := `
		INSERT INTO inventory_alerts (id, product_id, message, level, alerted_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := db.Pool.Exec(ctx, query,
		alert.ID,
		alert.ProductID,
		alert.Message,
		alert.Level,
		alert.AlertedAt,
	)
	return err
}

func (db *Postgres) GetAlert(ctx context.Context, id string) (*model.InventoryAlert, error) {
	query := `
		SELECT id, product_id, message, level, alerted_at, is_resolved, resolved_at, resolved_by
		FROM inventory_alerts
		WHERE id = $1
	`
	var a model.InventoryAlert
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.ProductID, &a.Message, &a.Level, &a.AlertedAt, &a.IsResolved, &a.ResolvedAt, &a.ResolvedBy,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, service.ErrAlertNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (db *Postgres) ListAlerts(ctx context.Context, includeResolved bool) ([]model.InventoryAlert, error) {
	query := `
		SELECT id, product_id, message, level, alerted_at, is_resolved, resolved_at, resolved_by
		FROM inventory_alerts
		WHERE is_resolved = FALSE OR $1
		ORDER BY alerted_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, includeResolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.InventoryAlert{}
	for rows.Next() {
		var a model.InventoryAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Message, &a.Level, &a.AlertedAt, &a.IsResolved, &a.ResolvedAt, &a.ResolvedBy); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (db *Postgres) UpdateAlert(ctx context.Context, alert *model.InventoryAlert) error {
	query := `
		UPDATE inventory_alerts
		SET is_resolved = $2, resolved_at = $3, resolved_by = $4
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query, alert.ID, alert.IsResolved, alert.ResolvedAt, alert.ResolvedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return service.ErrAlertNotFound
	}
	return nil
}
