package model

type Product struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	SKU               string  `json:"sku"`
	Category          string  `json:"category"`
	SupplierID        int64   `json:"supplierId"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unitPrice"`
	LowStockThreshold int     `json:"lowStockThreshold"`
}

type Supplier struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

type CreateProductRequest struct {
	Name              string  `json:"name" binding:"required"`
	SKU               string  `json:"sku" binding:"required"`
	Category          string  `json:"category"`
	SupplierID        int64   `json:"supplierId"`
	Quantity          int     `json:"quantity" binding:"min=0"`
	UnitPrice         float64 `json:"unitPrice" binding:"min=0"`
	LowStockThreshold int     `json:"lowStockThreshold"`
}

type UpdateProductRequest struct {
	Name              string  `json:"name" binding:"required"`
	SKU               string  `json:"sku" binding:"required"`
	Category          string  `json:"category"`
	SupplierID        int64   `json:"supplierId"`
	Quantity          int     `json:"quantity" binding:"min=0"`
	UnitPrice         float64 `json:"unitPrice" binding:"min=0"`
	LowStockThreshold int     `json:"lowStockThreshold"`
}

type CreateSupplierRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}
