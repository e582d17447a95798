// Package planning contiene los servicios puros de planificación: resolución
// de BOM y cálculo de faltantes. Sin efectos secundarios.
package planning

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/domain"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
)

// BOMResolver traduce cantidades de producto terminado a cantidades de
// materia prima según el Bill of Materials del catálogo.
type BOMResolver struct {
	boms map[entity.ProductID][]entity.BOMItem
}

// NewBOMResolver construye el resolver a partir del catálogo. Solo los
// productos terminados aportan BOM (posiblemente vacío).
func NewBOMResolver(catalog []entity.Product) *BOMResolver {
	boms := make(map[entity.ProductID][]entity.BOMItem)
	for _, p := range catalog {
		if p.IsFinished() {
			boms[p.ID] = p.BOM
		}
	}
	return &BOMResolver{boms: boms}
}

// RequirementFor devuelve la materia prima necesaria para fabricar quantity
// unidades del producto terminado: quantity × BOM[raw] por cada línea,
// truncado a unidades enteras (política fija de redondeo hacia cero para
// ratios fraccionarios). Falla con ErrInvalidProduct si el producto no es
// un terminado del catálogo.
func (r *BOMResolver) RequirementFor(finishedID entity.ProductID, quantity decimal.Decimal) (map[entity.ProductID]decimal.Decimal, error) {
	bom, ok := r.boms[finishedID]
	if !ok {
		return nil, fmt.Errorf("requerimiento para producto %d: %w", finishedID, domain.ErrInvalidProduct)
	}
	req := make(map[entity.ProductID]decimal.Decimal, len(bom))
	for _, line := range bom {
		need := quantity.Mul(line.Quantity).Truncate(0)
		req[line.MaterialID] = req[line.MaterialID].Add(need)
	}
	return req, nil
}

// AggregateRequirement suma elemento a elemento RequirementFor sobre un
// conjunto de pedidos candidatos.
func (r *BOMResolver) AggregateRequirement(orders []*entity.ProductionOrder) (map[entity.ProductID]decimal.Decimal, error) {
	total := make(map[entity.ProductID]decimal.Decimal)
	for _, o := range orders {
		req, err := r.RequirementFor(o.ProductID, o.Quantity)
		if err != nil {
			return nil, err
		}
		for materialID, qty := range req {
			total[materialID] = total[materialID].Add(qty)
		}
	}
	return total, nil
}
