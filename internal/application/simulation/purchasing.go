package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/domain"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
	"github.com/jcastano/fabrica-sim/internal/domain/ledger"
	"github.com/jcastano/fabrica-sim/pkg/logger"
)

// PurchaseOrderTracker es dueño del ciclo de vida de las órdenes de compra:
// las emite con el plazo del proveedor y entrega las llegadas al libro de
// inventario cuando vence el plazo.
type PurchaseOrderTracker struct {
	orders    []*entity.PurchaseOrder
	suppliers map[entity.SupplierID]entity.Supplier
	products  map[entity.ProductID]entity.Product
	ledger    *ledger.Ledger
	journal   *Journal
	log       *logger.Logger
	nextID    entity.PurchaseID
}

// NewPurchaseOrderTracker construye el tracker sin órdenes.
func NewPurchaseOrderTracker(
	cfg Config,
	led *ledger.Ledger,
	journal *Journal,
	log *logger.Logger,
) *PurchaseOrderTracker {
	suppliers := make(map[entity.SupplierID]entity.Supplier, len(cfg.Suppliers))
	for _, s := range cfg.Suppliers {
		suppliers[s.ID] = s
	}
	products := make(map[entity.ProductID]entity.Product, len(cfg.Products))
	for _, p := range cfg.Products {
		products[p.ID] = p
	}
	return &PurchaseOrderTracker{
		suppliers: suppliers,
		products:  products,
		ledger:    led,
		journal:   journal,
		log:       log,
		nextID:    1,
	}
}

// Validate comprueba una decisión de compra sin crear nada: cantidad
// positiva, materia prima del catálogo y proveedor que la vende.
func (t *PurchaseOrderTracker) Validate(
	productID entity.ProductID,
	supplierID entity.SupplierID,
	quantity decimal.Decimal,
) (entity.SupplyDetail, error) {
	if !quantity.IsPositive() {
		return entity.SupplyDetail{}, fmt.Errorf("compra de %s unidades: %w", quantity.String(), domain.ErrInvalidInput)
	}
	product, ok := t.products[productID]
	if !ok || !product.IsRaw() {
		return entity.SupplyDetail{}, fmt.Errorf("compra de producto %d: %w", productID, domain.ErrInvalidProduct)
	}
	supplier, ok := t.suppliers[supplierID]
	if !ok {
		return entity.SupplyDetail{}, fmt.Errorf("proveedor %d: %w", supplierID, domain.ErrInvalidInput)
	}
	detail, ok := supplier.Detail(productID)
	if !ok {
		return entity.SupplyDetail{}, fmt.Errorf("proveedor %d, producto %d: %w",
			supplierID, productID, domain.ErrUnsupportedSupplierProduct)
	}
	return detail, nil
}

// Issue valida y crea una orden de compra IN_TRANSIT. El día de llegada
// queda fijado aquí (currentDay + lead time del proveedor para ese
// producto) y no se recalcula nunca. Sin cambio de estado si la validación
// falla.
func (t *PurchaseOrderTracker) Issue(
	productID entity.ProductID,
	supplierID entity.SupplierID,
	quantity decimal.Decimal,
	currentDay int,
) (*entity.PurchaseOrder, error) {
	detail, err := t.Validate(productID, supplierID, quantity)
	if err != nil {
		return nil, err
	}

	po := &entity.PurchaseOrder{
		ID:         t.nextID,
		ProductID:  productID,
		SupplierID: supplierID,
		Quantity:   quantity,
		UnitCost:   detail.UnitCost,
		IssueDay:   currentDay,
		ArrivalDay: currentDay + detail.LeadTimeDays,
		Status:     entity.PurchaseInTransit,
	}
	t.nextID++
	t.orders = append(t.orders, po)

	t.journal.Append(entity.EventPurchaseOrderCreated, currentDay, map[string]any{
		"orden_id":     po.ID,
		"producto_id":  productID,
		"proveedor_id": supplierID,
		"cantidad":     quantity.String(),
		"costo_total":  po.TotalCost().String(),
		"llegada_dia":  po.ArrivalDay,
	})
	return po, nil
}

// DeliverDue recorre las órdenes IN_TRANSIT y, para toda orden con
// ArrivalDay <= currentDay, acredita el libro y la marca ARRIVED. Idempotente
// por orden: una orden ya ARRIVED jamás se vuelve a acreditar. Debe correr
// antes de la generación de demanda del día para que las llegadas del mismo
// día sean visibles en los cálculos de faltantes posteriores.
func (t *PurchaseOrderTracker) DeliverDue(currentDay int) ([]*entity.PurchaseOrder, error) {
	var delivered []*entity.PurchaseOrder
	for _, po := range t.orders {
		if po.Status != entity.PurchaseInTransit || po.ArrivalDay > currentDay {
			continue
		}
		if err := t.ledger.Credit(po.ProductID, po.Quantity); err != nil {
			return delivered, err
		}
		po.Status = entity.PurchaseArrived
		delivered = append(delivered, po)
		t.journal.Append(entity.EventPurchaseReceived, currentDay, map[string]any{
			"orden_id":    po.ID,
			"producto_id": po.ProductID,
			"cantidad":    po.Quantity.String(),
		})
		t.journal.Append(entity.EventInventoryIncrease, currentDay, map[string]any{
			"producto_id": po.ProductID,
			"cantidad":    po.Quantity.String(),
			"nuevo_nivel": t.ledger.OnHand(po.ProductID).String(),
		})
	}
	return delivered, nil
}

// InTransit devuelve las órdenes aún en tránsito, en orden de emisión.
func (t *PurchaseOrderTracker) InTransit() []*entity.PurchaseOrder {
	var out []*entity.PurchaseOrder
	for _, po := range t.orders {
		if po.Status == entity.PurchaseInTransit {
			out = append(out, po)
		}
	}
	return out
}

// All devuelve todas las órdenes de compra (histórico incluido).
func (t *PurchaseOrderTracker) All() []*entity.PurchaseOrder {
	return t.orders
}
