package inventory

import "github.com/shopspring/decimal"

// DefaultMinimumStock umbral mínimo (toneladas) asignado a los productos
// sembrados por el reset.
var DefaultMinimumStock = decimal.NewFromFloat(50.0)

// seedProducts catálogo fijo que el reset reinstala: los agregados que el
// negocio maneja siempre, con stock y precio en cero hasta que el operador los
// cargue. El reset no genera movimientos (delta cero, nada que auditar).
var seedProducts = []string{
	"Arena fina",
	"Arena gruesa",
	"Grava",
	"Triturado 3/4",
	"Polvo de piedra",
	"Base granular",
}
