package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/agregados-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetLiveForUpdate bloquea la fila (SELECT FOR UPDATE) y por tanto solo tiene
// sentido dentro de una transacción; el resto acepta pool o tx.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetLive(id int64) (*entity.Product, error)
	GetLiveForUpdate(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	SoftDelete(id int64, at time.Time) error
	SetMinimumStockAll(min decimal.Decimal) (int64, error)
	ListLive() ([]*entity.Product, error)
	DeleteAll() error
}
