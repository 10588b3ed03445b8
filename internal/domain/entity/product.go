package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un material agregado en inventario (arena, grava, triturado...).
// Quantity y MinimumStock están en toneladas y pueden ser fraccionarios; Price es
// precio por tonelada. DeletedAt != nil marca borrado lógico: la fila se conserva
// para que el historial de movimientos siga resolviendo el nombre.
type Product struct {
	ID           int64
	Name         string
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	MinimumStock decimal.Decimal
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

// Live indica si el producto sigue activo (no borrado lógicamente).
func (p *Product) Live() bool {
	return p.DeletedAt == nil
}
