package entity

import "github.com/shopspring/decimal"

// OrderID identifica un pedido de fabricación. Secuencial: el planificador
// los escribe a mano en la consola.
type OrderID int64

// Estados de un pedido de fabricación.
//
// PENDING → RELEASED → COMPLETED, o PENDING → BLOCKED cuando la liberación
// falla por falta de materiales. BLOCKED no es terminal: el pedido puede
// reintentarse otro día. Los pedidos nunca se destruyen (histórico).
const (
	ProductionPending   = "PENDING"
	ProductionReleased  = "RELEASED"
	ProductionCompleted = "COMPLETED"
	ProductionBlocked   = "BLOCKED"
)

// ProductionOrder representa un pedido de fabricación de producto terminado.
// Lo crea el generador de demanda; solo la cola de producción lo muta.
type ProductionOrder struct {
	ID          OrderID
	ProductID   ProductID
	Quantity    decimal.Decimal
	CreationDay int
	Status      string
}

// Releasable indica si el pedido puede seleccionarse para liberar hoy.
// Los bloqueados siguen siendo elegibles para reintento.
func (o ProductionOrder) Releasable() bool {
	return o.Status == ProductionPending || o.Status == ProductionBlocked
}
