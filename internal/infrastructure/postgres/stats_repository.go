package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/agregados-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para el resumen del inventario.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de resumen.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// Summary agrega el stock activo en una sola consulta: total de toneladas,
// valor total (Σ cantidad × precio) y productos bajo su mínimo.
func (r *StatsRepo) Summary() (*repository.StockSummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                              AS product_count,
	    COUNT(*) FILTER (WHERE quantity < minimum_stock)      AS low_stock_count,
	    COALESCE(SUM(quantity), 0)                            AS total_quantity,
	    COALESCE(SUM(quantity * price), 0)                    AS total_value
	FROM products
	WHERE deleted_at IS NULL`

	var s repository.StockSummary
	err := r.pool.QueryRow(context.Background(), query).Scan(
		&s.ProductCount, &s.LowStockCount, &s.TotalQuantity, &s.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return &s, nil
}
