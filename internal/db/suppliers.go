package db

import (
	"context"

	"github.com/stocksmart/backend/internal/model"
	"github.com/stocksmart/backend/internal/service"
)

func (db *Postgres) GetAllSuppliers(ctx context.Context) ([]model.Supplier, error) {
	query := `
		SELECT id, name, contact_email, contact_phone
		FROM suppliers
		ORDER BY name
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Supplier{}
	for rows.Next() {
		var s model.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (db *Postgres) GetSupplier(ctx context.Context, id int64) (*model.Supplier, error) {
	query := `
		SELECT id, name, contact_email, contact_phone
		FROM suppliers
		WHERE id = $1
	`
	var s model.Supplier
	err := db.Pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone)
	if err != nil {
		if IsNoRows(err) {
			return nil, service.ErrSupplierNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (db *Postgres) InsertSupplier(ctx context.Context, supplier *model.Supplier) error {
	query := `
		INSERT INTO suppliers (name, contact_email, contact_phone)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return db.Pool.QueryRow(ctx, query,
		supplier.Name,
		supplier.ContactEmail,
		supplier.ContactPhone,
	).Scan(&supplier.ID)
}
