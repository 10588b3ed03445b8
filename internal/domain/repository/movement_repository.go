package repository

import "github.com/tu-usuario/agregados-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el historial de
// movimientos. Solo inserción y lectura: las filas son inmutables, y DeleteAll
// existe únicamente para el reset administrativo.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListWithProduct() ([]*entity.MovementWithProduct, error)
	DeleteAll() error
}
