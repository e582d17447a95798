package dto

import "github.com/shopspring/decimal"

// InventoryLineDTO una línea del panel de inventario.
type InventoryLineDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ProductionOrderDTO proyección de un pedido de fabricación.
type ProductionOrderDTO struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	CreationDay int             `json:"creation_day"`
	Status      string          `json:"status"`
}

// PurchaseOrderDTO proyección de una orden de compra.
type PurchaseOrderDTO struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	SupplierID   int64           `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	IssueDay     int             `json:"issue_day"`
	ArrivalDay   int             `json:"arrival_day"`
	Status       string          `json:"status"`
}

// ShortageDTO déficit de una materia prima frente al requerimiento agregado.
type ShortageDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Missing     decimal.Decimal `json:"missing"`
	OnHand      decimal.Decimal `json:"on_hand"`
}

// ViewDTO proyección de solo lectura del estado para la capa de presentación.
type ViewDTO struct {
	Day                int                  `json:"day"`
	Inventory          []InventoryLineDTO   `json:"inventory"`
	PendingOrders      []ProductionOrderDTO `json:"pending_orders"` // PENDING y BLOCKED (elegibles)
	InTransitPurchases []PurchaseOrderDTO   `json:"in_transit_purchases"`
	Shortages          []ShortageDTO        `json:"shortages"` // faltantes globales sobre los pedidos elegibles
}

// DaySummaryDTO instantánea de lo ocurrido en un paso de día, para renderizar.
type DaySummaryDTO struct {
	Day             int                  `json:"day"` // el día que acaba de ejecutarse
	IssuedPurchases []PurchaseOrderDTO   `json:"issued_purchases"`
	Arrivals        []PurchaseOrderDTO   `json:"arrivals"`
	CompletedOrders []ProductionOrderDTO `json:"completed_orders"`
	BlockedOrders   []ProductionOrderDTO `json:"blocked_orders"`
	DeferredOrders  []ProductionOrderDTO `json:"deferred_orders"` // sin procesar por capacidad
	NewOrders       []ProductionOrderDTO `json:"new_orders"`      // demanda generada, visible el día siguiente
	CapacityUsed    decimal.Decimal      `json:"capacity_used"`
	Shortages       []ShortageDTO        `json:"shortages"` // faltantes restantes tras el paso
}
