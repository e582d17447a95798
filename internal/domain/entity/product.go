package entity

import "github.com/shopspring/decimal"

// ProductID identifica un producto del catálogo (materia prima o terminado).
type ProductID int64

// Tipos de producto.
const (
	ProductTypeRaw      = "raw"      // materia prima
	ProductTypeFinished = "finished" // producto terminado
)

// BOMItem es una línea del Bill of Materials: cuánta materia prima se
// consume por cada unidad del producto terminado.
type BOMItem struct {
	MaterialID ProductID
	Quantity   decimal.Decimal // por unidad de producto terminado; puede ser fraccionaria
}

// Product representa un producto del catálogo. Inmutable tras la carga del
// escenario; el BOM solo aplica a productos terminados.
type Product struct {
	ID          ProductID
	Name        string
	Type        string // ProductTypeRaw | ProductTypeFinished
	UnitMeasure string
	BOM         []BOMItem
}

// IsFinished indica si el producto se fabrica (tiene o puede tener BOM).
func (p Product) IsFinished() bool { return p.Type == ProductTypeFinished }

// IsRaw indica si el producto se compra a proveedores.
func (p Product) IsRaw() bool { return p.Type == ProductTypeRaw }
