package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/agregados-api/internal/domain/entity"
	"github.com/tu-usuario/agregados-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, price, quantity, minimum_stock, created_at, deleted_at`

// Create persiste un producto nuevo; la base asigna el ID (BIGSERIAL) y se
// devuelve en el mismo struct.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (name, price, quantity, minimum_stock, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.Price, product.Quantity, product.MinimumStock, product.CreatedAt,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetLive obtiene un producto activo (no borrado) por ID. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetLive(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(query, id, "get product")
}

// GetLiveForUpdate obtiene un producto activo y bloquea la fila (SELECT FOR
// UPDATE) hasta el fin de la transacción. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetLiveForUpdate(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.scanOne(query, id, "get product for update")
}

func (r *ProductRepo) scanOne(query string, id int64, op string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Quantity, &p.MinimumStock, &p.CreatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// Update reemplaza name, quantity, price y minimum_stock de un producto activo.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, quantity = $3, price = $4, minimum_stock = $5
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Quantity, product.Price, product.MinimumStock,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update product %d: fila no afectada", product.ID)
	}
	return nil
}

// SoftDelete marca el producto como borrado; la fila se conserva y la cantidad
// queda congelada tal como estaba.
func (r *ProductRepo) SoftDelete(id int64, at time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("soft delete product %d: fila no afectada", id)
	}
	return nil
}

// SetMinimumStockAll fija el umbral mínimo de todos los productos activos y
// devuelve cuántas filas cambiaron.
func (r *ProductRepo) SetMinimumStockAll(min decimal.Decimal) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET minimum_stock = $1 WHERE deleted_at IS NULL`,
		min,
	)
	if err != nil {
		return 0, fmt.Errorf("set minimum stock: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ListLive lista los productos activos ordenados por nombre (collation de la base).
func (r *ProductRepo) ListLive() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE deleted_at IS NULL ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.MinimumStock, &p.CreatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeleteAll borra físicamente todos los productos y reinicia la secuencia de
// IDs. Solo lo usa el reset administrativo, después de vaciar el historial
// (la FK de stock_movements impide el orden inverso).
func (r *ProductRepo) DeleteAll() error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM products`); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `ALTER SEQUENCE products_id_seq RESTART WITH 1`); err != nil {
		return fmt.Errorf("restart products sequence: %w", err)
	}
	return nil
}
