package query

import (
	"github.com/tu-usuario/agregados-api/internal/application/dto"
	"github.com/tu-usuario/agregados-api/internal/domain/repository"
)

// QueryUseCase lecturas del inventario: listado de productos activos,
// historial de movimientos y resumen. Solo lecturas, sin transacción; los
// errores de la base suben envueltos y el handler los reporta como fallo
// genérico.
type QueryUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	statsRepo    repository.StatsRepository
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	statsRepo repository.StatsRepository,
) *QueryUseCase {
	return &QueryUseCase{productRepo: productRepo, movementRepo: movementRepo, statsRepo: statsRepo}
}

// ListLiveProducts lista los productos no borrados, ordenados por nombre.
func (uc *QueryUseCase) ListLiveProducts() ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListLive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			Quantity:     p.Quantity,
			MinimumStock: p.MinimumStock,
			CreatedAt:    p.CreatedAt,
		})
	}
	return items, nil
}

// ListHistory lista todo el historial de movimientos, el más reciente primero,
// con el nombre del producto resuelto aunque ya esté borrado lógicamente.
func (uc *QueryUseCase) ListHistory() ([]dto.MovementResponse, error) {
	list, err := uc.movementRepo.ListWithProduct()
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			ProductName:   m.ProductName,
			Action:        m.Action,
			QuantityDelta: m.QuantityDelta,
			StockBefore:   m.StockBefore,
			StockAfter:    m.StockAfter,
			CreatedAt:     m.CreatedAt,
		})
	}
	return items, nil
}

// Summary devuelve los agregados del stock activo: toneladas totales, valor
// total (Σ cantidad × precio) y cuántos productos están bajo su mínimo.
func (uc *QueryUseCase) Summary() (*dto.SummaryResponse, error) {
	s, err := uc.statsRepo.Summary()
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		ProductCount:  s.ProductCount,
		LowStockCount: s.LowStockCount,
		TotalQuantity: s.TotalQuantity,
		TotalValue:    s.TotalValue,
	}, nil
}
