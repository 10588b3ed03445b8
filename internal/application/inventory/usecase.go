package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/agregados-api/internal/application/dto"
	"github.com/tu-usuario/agregados-api/internal/domain"
	"github.com/tu-usuario/agregados-api/internal/domain/entity"
	"github.com/tu-usuario/agregados-api/internal/domain/inventory"
	"github.com/tu-usuario/agregados-api/internal/domain/repository"
)

// StockUseCase es el motor de mutaciones de inventario: crea, actualiza y
// borra (lógicamente) productos, garantizando que cada mutación persista su
// movimiento de auditoría en la misma transacción. Cualquier fallo en
// cualquier paso revierte la transacción completa (lo hace TxRunner.Run).
type StockUseCase struct {
	txRunner TxRunner
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner}
}

// Create inserta un producto nuevo y su movimiento de creación (0 → cantidad
// inicial). Nombre vacío falla con ErrInvalidInput antes de tocar la base.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		Name:      name,
		Price:     in.Price,
		Quantity:  in.Quantity,
		CreatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		mov := inventory.NewMovement(entity.ActionCreation, product.ID, decimal.Zero, product.Quantity, now)
		return movementRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update reemplaza todos los campos del producto (no es patch parcial: el
// caller envía también los campos que no cambian). Lee la cantidad actual con
// bloqueo de fila antes de escribir y registra el movimiento con ese delta,
// que puede ser cero, positivo o negativo.
func (uc *StockUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	var product *entity.Product
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		current, err := productRepo.GetLiveForUpdate(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		stockBefore := current.Quantity

		current.Name = name
		current.Quantity = in.Quantity
		current.Price = in.Price
		current.MinimumStock = in.MinimumStock
		if err := productRepo.Update(current); err != nil {
			return err
		}

		mov := inventory.NewMovement(entity.ActionUpdate, id, stockBefore, current.Quantity, now)
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		product = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// SoftDelete marca el producto como borrado (deleted_at = now) sin tocar su
// cantidad, y registra un movimiento de remoción que descarga el stock a cero
// (stock borrado se trata como lógicamente cero; la columna queda congelada
// con lo que había al momento de la baja, solo como dato histórico).
func (uc *StockUseCase) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		current, err := productRepo.GetLiveForUpdate(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.SoftDelete(id, now); err != nil {
			return err
		}
		mov := inventory.NewMovement(entity.ActionRemoval, id, current.Quantity, decimal.Zero, now)
		return movementRepo.Create(mov)
	})
}

// SetMinimumStockAll fija el umbral mínimo de todos los productos activos.
// No cambia cantidades, así que no genera movimientos.
func (uc *StockUseCase) SetMinimumStockAll(ctx context.Context, min decimal.Decimal) (int64, error) {
	if min.LessThan(decimal.Zero) {
		return 0, domain.ErrInvalidInput
	}
	var updated int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.MovementRepository,
	) error {
		n, err := productRepo.SetMinimumStockAll(min)
		if err != nil {
			return err
		}
		updated = n
		return nil
	})
	return updated, err
}

// Reset vacía historial y productos (incluidos los borrados lógicamente),
// reinicia los identificadores y vuelve a sembrar el catálogo por defecto con
// cantidad y precio cero. Todo en una transacción: si algo falla no se borra
// nada. Operación administrativa destructiva, protegida igual que el resto de
// mutaciones.
func (uc *StockUseCase) Reset(ctx context.Context) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		if err := movementRepo.DeleteAll(); err != nil {
			return err
		}
		if err := productRepo.DeleteAll(); err != nil {
			return err
		}
		for _, name := range seedProducts {
			p := &entity.Product{
				Name:         name,
				Price:        decimal.Zero,
				Quantity:     decimal.Zero,
				MinimumStock: DefaultMinimumStock,
				CreatedAt:    now,
			}
			if err := productRepo.Create(p); err != nil {
				return err
			}
		}
		return nil
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Quantity:     p.Quantity,
		MinimumStock: p.MinimumStock,
		CreatedAt:    p.CreatedAt,
		DeletedAt:    p.DeletedAt,
	}
}
