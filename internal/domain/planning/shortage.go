package planning

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/domain/entity"
)

// StockReader es la vista de solo lectura del libro de inventario que
// necesita el cálculo de faltantes.
type StockReader interface {
	OnHand(entity.ProductID) decimal.Decimal
}

// ShortageCalculator compara un requerimiento agregado contra el stock en
// mano y reporta los déficits. Solo lectura.
type ShortageCalculator struct {
	stock StockReader
}

// NewShortageCalculator construye el calculador sobre una vista de stock.
func NewShortageCalculator(stock StockReader) *ShortageCalculator {
	return &ShortageCalculator{stock: stock}
}

// Shortages devuelve max(0, requerido - en mano) por materia prima. Las
// materias con requerimiento cubierto se omiten del mapa (convención para
// economía de la vista: el mapa solo contiene déficits positivos).
func (c *ShortageCalculator) Shortages(requirement map[entity.ProductID]decimal.Decimal) map[entity.ProductID]decimal.Decimal {
	shortages := make(map[entity.ProductID]decimal.Decimal)
	for materialID, required := range requirement {
		deficit := required.Sub(c.stock.OnHand(materialID))
		if deficit.IsPositive() {
			shortages[materialID] = deficit
		}
	}
	return shortages
}
