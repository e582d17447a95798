package entity

import "github.com/shopspring/decimal"

// SupplierID identifica un proveedor.
type SupplierID int64

// SupplyDetail son las condiciones de un proveedor para una materia prima:
// costo unitario y plazo de entrega en días completos.
type SupplyDetail struct {
	UnitCost     decimal.Decimal
	LeadTimeDays int
}

// Supplier representa un proveedor y el conjunto de materias primas que
// vende. Inmutable tras la carga del escenario.
type Supplier struct {
	ID       SupplierID
	Name     string
	Supplies map[ProductID]SupplyDetail
}

// Detail devuelve las condiciones para una materia prima, si el proveedor la vende.
func (s Supplier) Detail(productID ProductID) (SupplyDetail, bool) {
	d, ok := s.Supplies[productID]
	return d, ok
}
