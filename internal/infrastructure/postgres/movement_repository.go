package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/agregados-api/internal/domain/entity"
	"github.com/tu-usuario/agregados-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del historial de movimientos sobre PostgreSQL
// (usable con pool o tx). Las filas son append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta una entrada del historial; la base asigna ID y timestamp
// (now() del servidor, no del cliente, para que el orden de inserción mande).
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (product_id, action, quantity_delta, stock_before, stock_after)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		movement.ProductID, movement.Action, movement.QuantityDelta,
		movement.StockBefore, movement.StockAfter,
	).Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListWithProduct lista todo el historial con el nombre del producto resuelto,
// el movimiento más reciente primero. El join siempre resuelve: los productos
// nunca se borran físicamente fuera del reset, que también vacía el historial.
func (r *MovementRepo) ListWithProduct() ([]*entity.MovementWithProduct, error) {
	query := `
		SELECT m.id, m.product_id, p.name, m.action, m.quantity_delta, m.stock_before, m.stock_after, m.created_at
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC, m.id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementWithProduct
	for rows.Next() {
		var m entity.MovementWithProduct
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.Action,
			&m.QuantityDelta, &m.StockBefore, &m.StockAfter, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteAll vacía el historial y reinicia la secuencia. Solo para el reset
// administrativo; debe ejecutarse antes de borrar los productos.
func (r *MovementRepo) DeleteAll() error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM stock_movements`); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `ALTER SEQUENCE stock_movements_id_seq RESTART WITH 1`); err != nil {
		return fmt.Errorf("restart movements sequence: %w", err)
	}
	return nil
}
