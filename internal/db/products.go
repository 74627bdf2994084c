package db

import (
	"context"

	"github.com/stocksmart/backend/internal/model"
	"github.com/stocksmart/backend/internal/service"
)

func (db *Postgres) EnsureProductSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS suppliers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			contact_email TEXT NOT NULL DEFAULT '',
			contact_phone TEXT NOT NULL DEFAULT ''
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			sku TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT '',
			supplier_id BIGINT REFERENCES suppliers(id),
			quantity INT NOT NULL DEFAULT 0,
			unit_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			low_stock_threshold INT NOT NULL DEFAULT 5
		)
		`,
		`CREATE INDEX IF NOT EXISTS products_category_idx ON products(category)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, sku, category, COALESCE(supplier_id, 0), quantity, unit_price, low_stock_threshold
		FROM products
		ORDER BY name
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.SupplierID, &p.Quantity, &p.UnitPrice, &p.LowStockThreshold); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (db *Postgres) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT id, name, sku, category, COALESCE(supplier_id, 0), quantity, unit_price, low_stock_threshold
		FROM products
		WHERE id = $1
	`
	var p model.Product
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.SKU, &p.Category, &p.SupplierID, &p.Quantity, &p.UnitPrice, &p.LowStockThreshold,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, service.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (db *Postgres) InsertProduct(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (name, sku, category, supplier_id, quantity, unit_price, low_stock_threshold)
		VALUES ($1, $2, $3, NULLIF($4, 0), $5, $6, $7)
		RETURNING id
	`
	return db.Pool.QueryRow(ctx, query,
		product.Name,
		product.SKU,
		product.Category,
		product.SupplierID,
		product.Quantity,
		product.UnitPrice,
		product.LowStockThreshold,
	).Scan(&product.ID)
}

func (db *Postgres) UpdateProduct(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, sku = $3, category = $4, supplier_id = NULLIF($5, 0),
		    quantity = $6, unit_price = $7, low_stock_threshold = $8
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.SKU,
		product.Category,
		product.SupplierID,
		product.Quantity,
		product.UnitPrice,
		product.LowStockThreshold,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return service.ErrProductNotFound
	}
	return nil
}

func (db *Postgres) Delete(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return service.ErrProductNotFound
	}
	return nil
}

func (db *Postgres) GetLowStock(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, sku, category, COALESCE(supplier_id, 0), quantity, unit_price, low_stock_threshold
		FROM products
		WHERE quantity <= low_stock_threshold
		ORDER BY quantity
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.SupplierID, &p.Quantity, &p.UnitPrice, &p.LowStockThreshold); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
