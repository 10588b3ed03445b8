package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementResponse una entrada del historial de movimientos, con el nombre del
// producto resuelto (también para productos ya borrados lógicamente).
type MovementResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Action        string          `json:"action"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	StockBefore   decimal.Decimal `json:"stock_before"`
	StockAfter    decimal.Decimal `json:"stock_after"`
	CreatedAt     time.Time       `json:"created_at"`
}
