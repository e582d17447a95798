package entity

import "github.com/shopspring/decimal"

// PurchaseID identifica una orden de compra.
type PurchaseID int64

// Estados de una orden de compra. ARRIVED es terminal.
const (
	PurchaseInTransit = "IN_TRANSIT"
	PurchaseArrived   = "ARRIVED"
)

// PurchaseOrder representa una orden de compra de materia prima a un
// proveedor. ArrivalDay se fija al emitir (IssueDay + lead time del
// proveedor) y nunca se recalcula; solo el tracker de compras la muta.
type PurchaseOrder struct {
	ID         PurchaseID
	ProductID  ProductID
	SupplierID SupplierID
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal // condición del proveedor al emitir
	IssueDay   int
	ArrivalDay int
	Status     string
}

// TotalCost devuelve Quantity × UnitCost. Solo informativo: la simulación
// no modela contabilidad más allá del registro del costo.
func (po PurchaseOrder) TotalCost() decimal.Decimal {
	return po.Quantity.Mul(po.UnitCost)
}
