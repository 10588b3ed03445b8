package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/agregados-api/internal/domain/entity"
)

// NewMovement deriva la entrada de auditoría para una mutación de stock
// (servicio de dominio puro, sin estado ni acceso a persistencia).
// Delta = StockAfter - StockBefore; el caller garantiza que before/after son
// consistentes con la mutación, aquí no se valida nada.
func NewMovement(action string, productID int64, stockBefore, stockAfter decimal.Decimal, at time.Time) *entity.Movement {
	return &entity.Movement{
		ProductID:     productID,
		Action:        action,
		QuantityDelta: stockAfter.Sub(stockBefore),
		StockBefore:   stockBefore,
		StockAfter:    stockAfter,
		CreatedAt:     at,
	}
}
