package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Price y Quantity son
// opcionales y valen 0 si se omiten.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// UpdateProductRequest entrada para actualizar un producto. Reemplazo completo:
// el caller debe enviar todos los campos en cada llamada, incluidos los que no
// cambian (contrato heredado de los clientes existentes, no es un patch parcial).
type UpdateProductRequest struct {
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// SetMinimumStockRequest entrada para fijar el stock mínimo de todos los
// productos activos de una vez.
type SetMinimumStockRequest struct {
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// SetMinimumStockResponse cuántos productos se actualizaron.
type SetMinimumStockResponse struct {
	Updated int64 `json:"updated"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	DeletedAt    *time.Time      `json:"deleted_at,omitempty"`
}

// SummaryResponse agregados del stock activo (lo que antes calculaba el
// frontend sobre su copia local; el servidor es la fuente de verdad).
type SummaryResponse struct {
	ProductCount  int             `json:"product_count"`
	LowStockCount int             `json:"low_stock_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}
