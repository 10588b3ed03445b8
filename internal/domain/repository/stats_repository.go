package repository

import "github.com/shopspring/decimal"

// StockSummary agregados del stock activo calculados por la base de datos.
type StockSummary struct {
	ProductCount  int
	LowStockCount int
	TotalQuantity decimal.Decimal
	TotalValue    decimal.Decimal
}

// StatsRepository consultas de solo lectura para el resumen del inventario.
type StatsRepository interface {
	Summary() (*StockSummary, error)
}
