package simulation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/domain"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
	"github.com/jcastano/fabrica-sim/internal/domain/ledger"
	"github.com/jcastano/fabrica-sim/internal/domain/planning"
	"github.com/jcastano/fabrica-sim/pkg/logger"
)

// BlockedRelease describe un pedido que no pudo liberarse por falta de
// materiales, con el faltante por materia prima que lo impidió.
type BlockedRelease struct {
	OrderID  entity.OrderID
	Shortage map[entity.ProductID]decimal.Decimal
}

// ReleaseResult resume el procesamiento de un lote de liberaciones. Cada
// pedido seleccionado termina en exactamente una de las tres listas o queda
// intacto tras agotarse la capacidad.
type ReleaseResult struct {
	Completed []entity.OrderID
	Blocked   []BlockedRelease
	// Deferred son los pedidos que quedaron sin procesar (PENDING/BLOCKED sin
	// cambios) porque el lote agotó la capacidad diaria.
	Deferred     []entity.OrderID
	CapacityUsed decimal.Decimal
}

// ProductionOrderQueue es dueña del ciclo de vida de los pedidos de
// fabricación y ejecuta liberaciones contra el libro de inventario,
// acotadas por la capacidad diaria.
type ProductionOrderQueue struct {
	orders   []*entity.ProductionOrder
	byID     map[entity.OrderID]*entity.ProductionOrder
	resolver *planning.BOMResolver
	ledger   *ledger.Ledger
	shortage *planning.ShortageCalculator
	journal  *Journal
	log      *logger.Logger
}

// NewProductionOrderQueue construye la cola vacía.
func NewProductionOrderQueue(
	resolver *planning.BOMResolver,
	led *ledger.Ledger,
	journal *Journal,
	log *logger.Logger,
) *ProductionOrderQueue {
	return &ProductionOrderQueue{
		byID:     make(map[entity.OrderID]*entity.ProductionOrder),
		resolver: resolver,
		ledger:   led,
		shortage: planning.NewShortageCalculator(led),
		journal:  journal,
		log:      log,
	}
}

// Add incorpora pedidos nuevos (recién generados) a la cola.
func (q *ProductionOrderQueue) Add(orders ...*entity.ProductionOrder) {
	for _, o := range orders {
		q.orders = append(q.orders, o)
		q.byID[o.ID] = o
	}
}

// Get devuelve un pedido por ID.
func (q *ProductionOrderQueue) Get(id entity.OrderID) (*entity.ProductionOrder, bool) {
	o, ok := q.byID[id]
	return o, ok
}

// All devuelve todos los pedidos en orden de creación (histórico incluido).
func (q *ProductionOrderQueue) All() []*entity.ProductionOrder {
	return q.orders
}

// Releasable devuelve los pedidos elegibles para liberar (PENDING o BLOCKED),
// en orden de creación.
func (q *ProductionOrderQueue) Releasable() []*entity.ProductionOrder {
	var out []*entity.ProductionOrder
	for _, o := range q.orders {
		if o.Releasable() {
			out = append(out, o)
		}
	}
	return out
}

// ValidateSelection comprueba un lote sin tocar estado: todos los IDs existen
// y son elegibles. El reloj lo usa antes de iniciar el paso de día para que
// una selección inválida no deje efectos parciales.
func (q *ProductionOrderQueue) ValidateSelection(selected []entity.OrderID) error {
	_, err := q.validateSelection(selected)
	return err
}

// validateSelection resuelve y valida el lote en el orden dado. Un ID
// repetido se rechaza: liberaría el mismo pedido dos veces.
func (q *ProductionOrderQueue) validateSelection(selected []entity.OrderID) ([]*entity.ProductionOrder, error) {
	orders := make([]*entity.ProductionOrder, 0, len(selected))
	seen := make(map[entity.OrderID]bool, len(selected))
	for _, id := range selected {
		if seen[id] {
			return nil, fmt.Errorf("pedido %d repetido en la selección: %w", id, domain.ErrInvalidInput)
		}
		seen[id] = true
		o, ok := q.byID[id]
		if !ok {
			return nil, fmt.Errorf("pedido %d: %w", id, domain.ErrUnknownOrder)
		}
		if !o.Releasable() {
			return nil, fmt.Errorf("pedido %d en estado %s no es liberable: %w", id, o.Status, domain.ErrInvalidInput)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Release procesa los pedidos seleccionados uno a uno, en el orden dado por
// el planificador (sin reordenar: los desempates bajo capacidad parcial los
// decide el caller).
//
// Política de fallo en dos niveles, por pedido:
//   - Falta de material (DebitMany todo-o-nada rechazado): el pedido pasa a
//     BLOCKED, no consume capacidad y el procesamiento CONTINÚA con el
//     siguiente pedido.
//   - Capacidad agotada (lo ya liberado + este pedido > capacidad): el
//     procesamiento se DETIENE; ese pedido y todos los posteriores quedan
//     sin cambios.
//
// Cada pedido que debita su BOM completo pasa RELEASED → COMPLETED en el
// mismo día (la producción es instantánea, acotada por capacidad) y su
// cantidad se acredita como producto terminado.
func (q *ProductionOrderQueue) Release(selected []entity.OrderID, capacity decimal.Decimal, currentDay int) (ReleaseResult, error) {
	result := ReleaseResult{CapacityUsed: decimal.Zero}

	orders, err := q.validateSelection(selected)
	if err != nil {
		return result, err
	}

	for i, order := range orders {
		if result.CapacityUsed.Add(order.Quantity).GreaterThan(capacity) {
			// Capacidad agotada: este pedido y los posteriores quedan intactos.
			for _, rest := range orders[i:] {
				result.Deferred = append(result.Deferred, rest.ID)
			}
			q.log.Info().
				Int("dia", currentDay).
				Int64("pedido", int64(order.ID)).
				Str("capacidad_usada", result.CapacityUsed.String()).
				Str("capacidad", capacity.String()).
				Msg("capacidad diaria agotada; el resto del lote queda pendiente")
			break
		}

		requirement, err := q.resolver.RequirementFor(order.ProductID, order.Quantity)
		if err != nil {
			return result, err
		}

		if err := q.ledger.DebitMany(requirement); err != nil {
			if !errors.Is(err, domain.ErrInsufficientStock) {
				return result, err
			}
			// Material insuficiente: BLOCKED, sin consumir capacidad; el lote sigue.
			order.Status = entity.ProductionBlocked
			missing := q.shortage.Shortages(requirement)
			result.Blocked = append(result.Blocked, BlockedRelease{OrderID: order.ID, Shortage: missing})
			q.journal.Append(entity.EventOrderBlocked, currentDay, map[string]any{
				"pedido_id":   order.ID,
				"producto_id": order.ProductID,
				"faltantes":   shortageDetails(missing),
			})
			continue
		}

		order.Status = entity.ProductionReleased
		q.journal.Append(entity.EventOrderReleased, currentDay, map[string]any{
			"pedido_id":   order.ID,
			"producto_id": order.ProductID,
			"cantidad":    order.Quantity.String(),
		})
		q.journal.Append(entity.EventInventoryDecrease, currentDay, map[string]any{
			"pedido_id":  order.ID,
			"materiales": shortageDetails(requirement),
		})

		if err := q.ledger.Credit(order.ProductID, order.Quantity); err != nil {
			return result, err
		}
		order.Status = entity.ProductionCompleted
		result.CapacityUsed = result.CapacityUsed.Add(order.Quantity)
		result.Completed = append(result.Completed, order.ID)
		q.journal.Append(entity.EventProductionCompleted, currentDay, map[string]any{
			"pedido_id":   order.ID,
			"producto_id": order.ProductID,
			"cantidad":    order.Quantity.String(),
		})
	}

	return result, nil
}

// shortageDetails aplana un mapa de cantidades a detalles serializables del diario.
func shortageDetails(m map[entity.ProductID]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(m))
	for id, qty := range m {
		out[fmt.Sprintf("%d", id)] = qty.String()
	}
	return out
}
