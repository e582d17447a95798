package simulation

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/application/dto"
	"github.com/jcastano/fabrica-sim/internal/domain"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
	"github.com/jcastano/fabrica-sim/internal/domain/ledger"
	"github.com/jcastano/fabrica-sim/internal/domain/planning"
	"github.com/jcastano/fabrica-sim/pkg/logger"
)

// PurchaseRequest es una decisión de compra del planificador pendiente de
// aplicar en el próximo paso de día.
type PurchaseRequest struct {
	ProductID  entity.ProductID
	SupplierID entity.SupplierID
	Quantity   decimal.Decimal
}

// Engine orquesta la simulación: posee el reloj, el libro de inventario, la
// cola de producción y el tracker de compras, y expone las cuatro
// operaciones del contrato externo (inicializar, vista, avanzar día y emitir
// compra).
//
// Turnos cooperativos: exactamente un paso de día ejecuta a la vez, hasta
// completarse. La guarda de re-entrada rechaza un segundo avance concurrente
// en lugar de encolarlo; el día actual no se incrementa si el paso no
// completó.
type Engine struct {
	cfg       Config
	products  map[entity.ProductID]entity.Product
	suppliers map[entity.SupplierID]entity.Supplier

	ledger   *ledger.Ledger
	resolver *planning.BOMResolver
	shortage *planning.ShortageCalculator
	demand   *DemandGenerator
	queue    *ProductionOrderQueue
	tracker  *PurchaseOrderTracker
	journal  *Journal
	log      *logger.Logger

	day      int
	stepping sync.Mutex // TryLock: guarda de re-entrada en la frontera
}

// NewEngine valida la configuración y construye el estado inicial de la
// simulación (día 0, sin pedidos ni órdenes). Falla con ErrInvalidConfig
// antes de correr ningún paso si el escenario es incoherente.
func NewEngine(cfg Config, log *logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	products := make(map[entity.ProductID]entity.Product, len(cfg.Products))
	for _, p := range cfg.Products {
		products[p.ID] = p
	}
	suppliers := make(map[entity.SupplierID]entity.Supplier, len(cfg.Suppliers))
	for _, s := range cfg.Suppliers {
		suppliers[s.ID] = s
	}

	led := ledger.New(cfg.Products, cfg.InitialInventory)
	resolver := planning.NewBOMResolver(cfg.Products)
	journal := NewJournal(log)

	e := &Engine{
		cfg:       cfg,
		products:  products,
		suppliers: suppliers,
		ledger:    led,
		resolver:  resolver,
		shortage:  planning.NewShortageCalculator(led),
		demand:    NewDemandGenerator(cfg, cfg.Seed),
		queue:     NewProductionOrderQueue(resolver, led, journal, log),
		tracker:   NewPurchaseOrderTracker(cfg, led, journal, log),
		journal:   journal,
		log:       log,
	}

	log.Info().
		Int("productos", len(cfg.Products)).
		Int("proveedores", len(cfg.Suppliers)).
		Str("capacidad_diaria", cfg.DailyCapacity.String()).
		Int64("semilla", cfg.Seed).
		Msg("simulación inicializada")
	return e, nil
}

// CurrentDay devuelve el día actual del reloj (empieza en 0).
func (e *Engine) CurrentDay() int { return e.day }

// IssuePurchaseOrder delega en el tracker: valida y crea la orden IN_TRANSIT
// al día actual. Puede llamarse cualquier número de veces antes del próximo
// avance; cada llamada se valida de forma independiente.
func (e *Engine) IssuePurchaseOrder(
	productID entity.ProductID,
	supplierID entity.SupplierID,
	quantity decimal.Decimal,
) (dto.PurchaseOrderDTO, error) {
	if !e.stepping.TryLock() {
		return dto.PurchaseOrderDTO{}, domain.ErrConcurrentAdvance
	}
	defer e.stepping.Unlock()

	po, err := e.tracker.Issue(productID, supplierID, quantity, e.day)
	if err != nil {
		return dto.PurchaseOrderDTO{}, err
	}
	e.log.Info().
		Int64("orden", int64(po.ID)).
		Int64("producto", int64(po.ProductID)).
		Str("cantidad", po.Quantity.String()).
		Int("llegada", po.ArrivalDay).
		Msg("orden de compra emitida")
	return e.purchaseDTO(po), nil
}

// AdvanceDay ejecuta un paso de día completo en orden fijo:
//
//	(a) aplica las decisiones de compra del lote (si las hay),
//	(b) entrega las órdenes de compra vencidas,
//	(c) libera los pedidos seleccionados contra capacidad y materiales,
//	(d) genera la demanda nueva (visible el día siguiente),
//	(e) incrementa el día.
//
// Toda la selección se valida antes del primer efecto: un ID desconocido o
// una compra inválida abortan el paso sin mutar nada y sin avanzar el reloj.
func (e *Engine) AdvanceDay(selected []entity.OrderID, purchases []PurchaseRequest) (dto.DaySummaryDTO, error) {
	if !e.stepping.TryLock() {
		return dto.DaySummaryDTO{}, domain.ErrConcurrentAdvance
	}
	defer e.stepping.Unlock()

	day := e.day

	// Validación previa de todo el lote: sin efectos parciales.
	if err := e.queue.ValidateSelection(selected); err != nil {
		return dto.DaySummaryDTO{}, err
	}
	for _, pr := range purchases {
		if _, err := e.tracker.Validate(pr.ProductID, pr.SupplierID, pr.Quantity); err != nil {
			return dto.DaySummaryDTO{}, err
		}
	}

	summary := dto.DaySummaryDTO{Day: day, CapacityUsed: decimal.Zero}

	// (a) compras decididas por el planificador
	for _, pr := range purchases {
		po, err := e.tracker.Issue(pr.ProductID, pr.SupplierID, pr.Quantity, day)
		if err != nil {
			return dto.DaySummaryDTO{}, err
		}
		summary.IssuedPurchases = append(summary.IssuedPurchases, e.purchaseDTO(po))
	}

	// (b) llegadas: antes que nada para que el stock del día esté completo
	arrivals, err := e.tracker.DeliverDue(day)
	if err != nil {
		return dto.DaySummaryDTO{}, err
	}
	for _, po := range arrivals {
		summary.Arrivals = append(summary.Arrivals, e.purchaseDTO(po))
	}

	// (c) liberaciones contra capacidad y materiales
	release, err := e.queue.Release(selected, e.cfg.DailyCapacity, day)
	if err != nil {
		return dto.DaySummaryDTO{}, err
	}
	summary.CapacityUsed = release.CapacityUsed
	for _, id := range release.Completed {
		summary.CompletedOrders = append(summary.CompletedOrders, e.orderDTOByID(id))
	}
	for _, b := range release.Blocked {
		summary.BlockedOrders = append(summary.BlockedOrders, e.orderDTOByID(b.OrderID))
	}
	for _, id := range release.Deferred {
		summary.DeferredOrders = append(summary.DeferredOrders, e.orderDTOByID(id))
	}

	// (d) demanda nueva, visible el día siguiente
	newOrders := e.demand.Generate(day)
	e.queue.Add(newOrders...)
	for _, o := range newOrders {
		e.journal.Append(entity.EventDemandGenerated, day, map[string]any{
			"pedido_id":   o.ID,
			"producto_id": o.ProductID,
			"cantidad":    o.Quantity.String(),
		})
		summary.NewOrders = append(summary.NewOrders, e.orderDTO(o))
	}

	// (e) avanzar el reloj: solo cuando el paso completó
	e.day++

	summary.Shortages = e.globalShortages()
	e.log.Info().
		Int("dia", day).
		Int("llegadas", len(summary.Arrivals)).
		Int("completados", len(summary.CompletedOrders)).
		Int("bloqueados", len(summary.BlockedOrders)).
		Int("demanda_nueva", len(summary.NewOrders)).
		Msg("día simulado")
	return summary, nil
}

// CurrentView devuelve la proyección de solo lectura para la presentación:
// día, inventario, pedidos elegibles, compras en tránsito y faltantes
// globales sobre los pedidos elegibles.
func (e *Engine) CurrentView() dto.ViewDTO {
	view := dto.ViewDTO{Day: e.day}

	for id, qty := range e.ledger.Snapshot() {
		p := e.products[id]
		view.Inventory = append(view.Inventory, dto.InventoryLineDTO{
			ProductID:   int64(id),
			ProductName: p.Name,
			Type:        p.Type,
			Quantity:    qty,
		})
	}
	sort.Slice(view.Inventory, func(i, j int) bool {
		return view.Inventory[i].ProductID < view.Inventory[j].ProductID
	})

	for _, o := range e.queue.Releasable() {
		view.PendingOrders = append(view.PendingOrders, e.orderDTO(o))
	}
	for _, po := range e.tracker.InTransit() {
		view.InTransitPurchases = append(view.InTransitPurchases, e.purchaseDTO(po))
	}
	view.Shortages = e.globalShortages()
	return view
}

// ShortagesFor calcula los faltantes para una selección candidata concreta,
// sin tocar estado. Falla con ErrUnknownOrder si algún ID no existe.
func (e *Engine) ShortagesFor(selected []entity.OrderID) ([]dto.ShortageDTO, error) {
	orders, err := e.queue.validateSelection(selected)
	if err != nil {
		return nil, err
	}
	requirement, err := e.resolver.AggregateRequirement(orders)
	if err != nil {
		return nil, err
	}
	return e.shortageDTOs(e.shortage.Shortages(requirement)), nil
}

// Events devuelve el diario completo de la simulación.
func (e *Engine) Events() []entity.Event {
	return e.journal.Events()
}

// globalShortages agrega el requerimiento de todos los pedidos elegibles y
// devuelve los déficits, como el panel de faltantes del tablero original.
func (e *Engine) globalShortages() []dto.ShortageDTO {
	requirement, err := e.resolver.AggregateRequirement(e.queue.Releasable())
	if err != nil {
		// Los pedidos salen del catálogo validado; esto sería un bug interno.
		e.log.Error().Err(err).Msg("agregando requerimientos de pedidos elegibles")
		return nil
	}
	return e.shortageDTOs(e.shortage.Shortages(requirement))
}

func (e *Engine) shortageDTOs(shortages map[entity.ProductID]decimal.Decimal) []dto.ShortageDTO {
	out := make([]dto.ShortageDTO, 0, len(shortages))
	for id, missing := range shortages {
		out = append(out, dto.ShortageDTO{
			ProductID:   int64(id),
			ProductName: e.products[id].Name,
			Missing:     missing,
			OnHand:      e.ledger.OnHand(id),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func (e *Engine) orderDTO(o *entity.ProductionOrder) dto.ProductionOrderDTO {
	return dto.ProductionOrderDTO{
		ID:          int64(o.ID),
		ProductID:   int64(o.ProductID),
		ProductName: e.products[o.ProductID].Name,
		Quantity:    o.Quantity,
		CreationDay: o.CreationDay,
		Status:      o.Status,
	}
}

func (e *Engine) orderDTOByID(id entity.OrderID) dto.ProductionOrderDTO {
	o, _ := e.queue.Get(id)
	return e.orderDTO(o)
}

func (e *Engine) purchaseDTO(po *entity.PurchaseOrder) dto.PurchaseOrderDTO {
	return dto.PurchaseOrderDTO{
		ID:           int64(po.ID),
		ProductID:    int64(po.ProductID),
		ProductName:  e.products[po.ProductID].Name,
		SupplierID:   int64(po.SupplierID),
		SupplierName: e.suppliers[po.SupplierID].Name,
		Quantity:     po.Quantity,
		UnitCost:     po.UnitCost,
		TotalCost:    po.TotalCost(),
		IssueDay:     po.IssueDay,
		ArrivalDay:   po.ArrivalDay,
		Status:       po.Status,
	}
}
