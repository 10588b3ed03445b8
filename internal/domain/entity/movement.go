package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones válidas para un movimiento de stock.
const (
	ActionCreation = "creation"
	ActionUpdate   = "update"
	ActionRemoval  = "removal"
)

// Movement es una entrada inmutable del historial de movimientos: registra un
// cambio de cantidad de un producto. Solo se inserta, nunca se actualiza ni se
// borra (salvo el reset administrativo que vacía todo el almacén).
// Invariante: StockAfter - StockBefore == QuantityDelta.
type Movement struct {
	ID            int64
	ProductID     int64
	Action        string
	QuantityDelta decimal.Decimal
	StockBefore   decimal.Decimal
	StockAfter    decimal.Decimal
	CreatedAt     time.Time
}

// MovementWithProduct es un movimiento junto con el nombre actual del producto
// (el join resuelve también productos borrados lógicamente).
type MovementWithProduct struct {
	Movement
	ProductName string
}
