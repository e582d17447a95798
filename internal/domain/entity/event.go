package entity

import "time"

// Tipos de evento del diario de simulación.
const (
	EventDemandGenerated      = "DEMAND_GENERATED"
	EventOrderReleased        = "ORDER_RELEASED"
	EventOrderBlocked         = "ORDER_BLOCKED"
	EventProductionCompleted  = "PRODUCTION_COMPLETED"
	EventPurchaseOrderCreated = "PURCHASE_ORDER_CREATED"
	EventPurchaseReceived     = "PURCHASE_RECEIVED"
	EventInventoryIncrease    = "INVENTORY_INCREASE"
	EventInventoryDecrease    = "INVENTORY_DECREASE"
)

// Event es una entrada del diario en memoria: qué pasó, en qué día simulado
// y con qué detalles. Sirve al histórico de la vista; no se persiste.
type Event struct {
	ID        string // uuid
	Type      string
	SimDay    int
	Details   map[string]any
	CreatedAt time.Time
}
