package simulation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/fabrica-sim/internal/application/simulation"
	"github.com/jcastano/fabrica-sim/internal/domain"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
	"github.com/jcastano/fabrica-sim/internal/domain/ledger"
	"github.com/jcastano/fabrica-sim/internal/domain/planning"
	"github.com/jcastano/fabrica-sim/pkg/logger"
)

// newTestQueue arma cola + libro sobre el escenario compartido.
func newTestQueue(t *testing.T, filamentoInicial int64) (*simulation.ProductionOrderQueue, *ledger.Ledger) {
	t.Helper()
	cfg := newTestConfig(filamentoInicial)
	led := ledger.New(cfg.Products, cfg.InitialInventory)
	resolver := planning.NewBOMResolver(cfg.Products)
	journal := simulation.NewJournal(logger.Nop())
	return simulation.NewProductionOrderQueue(resolver, led, journal, logger.Nop()), led
}

// Escenario de referencia: stock 100, BOM 5/ud, pedido de 10 ⇒ requerimiento
// 50 ≤ 100 ⇒ libera, filamento queda en 50 y el terminado sube 10.
func TestRelease_ExitoConsumeBOMYAcreditaTerminado(t *testing.T) {
	q, led := newTestQueue(t, 100)
	q.Add(pedido(1, impresora, 10, 0))

	res, err := q.Release([]entity.OrderID{1}, decimal.NewFromInt(10), 1)
	require.NoError(t, err)

	assert.Equal(t, []entity.OrderID{1}, res.Completed)
	assert.Empty(t, res.Blocked)
	assert.Empty(t, res.Deferred)
	assert.True(t, res.CapacityUsed.Equal(decimal.NewFromInt(10)))

	assert.True(t, led.OnHand(filamento).Equal(decimal.NewFromInt(50)))
	assert.True(t, led.OnHand(impresora).Equal(decimal.NewFromInt(10)))

	o, _ := q.Get(1)
	assert.Equal(t, entity.ProductionCompleted, o.Status,
		"la liberación exitosa completa en el mismo día")
}

// Escenario de referencia: stock 20, requerimiento 50 ⇒ faltante 30, el
// pedido queda BLOCKED y nada cambia en el libro.
func TestRelease_MaterialInsuficienteBloquea(t *testing.T) {
	q, led := newTestQueue(t, 20)
	q.Add(pedido(1, impresora, 10, 0))

	res, err := q.Release([]entity.OrderID{1}, decimal.NewFromInt(10), 1)
	require.NoError(t, err, "el bloqueo por material es resultado, no error de la operación")

	require.Len(t, res.Blocked, 1)
	assert.Equal(t, entity.OrderID(1), res.Blocked[0].OrderID)
	assert.True(t, res.Blocked[0].Shortage[filamento].Equal(decimal.NewFromInt(30)),
		"faltante = 50 requeridos - 20 en mano")

	assert.True(t, led.OnHand(filamento).Equal(decimal.NewFromInt(20)), "sin débitos parciales")
	assert.True(t, led.OnHand(impresora).IsZero())
	assert.True(t, res.CapacityUsed.IsZero(), "un pedido bloqueado no consume capacidad")

	o, _ := q.Get(1)
	assert.Equal(t, entity.ProductionBlocked, o.Status)
}

// Escenario de referencia: capacidad 5 con pedidos de 4 y 4 en ese orden ⇒
// el primero libera (capacidad restante 1), el segundo excede y queda
// PENDING; capacidad consumida 4.
func TestRelease_CapacidadParcialDetieneElLote(t *testing.T) {
	q, led := newTestQueue(t, 100)
	q.Add(pedido(1, impresora, 4, 0), pedido(2, impresora, 4, 0))

	res, err := q.Release([]entity.OrderID{1, 2}, decimal.NewFromInt(5), 1)
	require.NoError(t, err)

	assert.Equal(t, []entity.OrderID{1}, res.Completed)
	assert.Equal(t, []entity.OrderID{2}, res.Deferred)
	assert.True(t, res.CapacityUsed.Equal(decimal.NewFromInt(4)))

	o2, _ := q.Get(2)
	assert.Equal(t, entity.ProductionPending, o2.Status,
		"el pedido diferido por capacidad queda PENDING, no BLOCKED")
	// Solo se consumió el BOM del pedido liberado: 4×5 = 20
	assert.True(t, led.OnHand(filamento).Equal(decimal.NewFromInt(80)))
}

// Una vez agotada la capacidad, TODOS los pedidos posteriores del lote
// quedan sin procesar aunque individualmente cupieran.
func TestRelease_CapacidadAgotadaNoEvaluaPosteriores(t *testing.T) {
	q, _ := newTestQueue(t, 1000)
	q.Add(pedido(1, impresora, 4, 0), pedido(2, impresora, 8, 0), pedido(3, impresora, 1, 0))

	res, err := q.Release([]entity.OrderID{1, 2, 3}, decimal.NewFromInt(5), 1)
	require.NoError(t, err)

	assert.Equal(t, []entity.OrderID{1}, res.Completed)
	assert.Equal(t, []entity.OrderID{2, 3}, res.Deferred,
		"el pedido 3 cabía, pero el corte por capacidad detiene el lote completo")
}

// Política de fallo en dos niveles combinada: un bloqueo por material no
// consume capacidad y el lote continúa; el corte por capacidad sí detiene.
func TestRelease_BloqueoYCapacidadCombinados(t *testing.T) {
	// Stock 30: p1 de 4 consume 20 (quedan 10); p2 de 4 requiere 20 > 10 y se
	// bloquea sin consumir capacidad; p3 de 2 requiere 10 ≤ 10 y completa.
	q, led := newTestQueue(t, 30)
	q.Add(pedido(1, impresora, 4, 0), pedido(2, impresora, 4, 0), pedido(3, impresora, 2, 0))

	res, err := q.Release([]entity.OrderID{1, 2, 3}, decimal.NewFromInt(9), 1)
	require.NoError(t, err)

	assert.Equal(t, []entity.OrderID{1, 3}, res.Completed,
		"el bloqueo del pedido 2 no impide evaluar el 3")
	require.Len(t, res.Blocked, 1)
	assert.Equal(t, entity.OrderID(2), res.Blocked[0].OrderID)
	assert.True(t, res.CapacityUsed.Equal(decimal.NewFromInt(6)),
		"capacidad consumida solo por los completados: 4 + 2")
	assert.True(t, led.OnHand(filamento).IsZero(), "30 - 20 - 10")
}

// La suma de cantidades completadas en un día nunca excede la capacidad.
func TestRelease_NuncaExcedeCapacidad(t *testing.T) {
	q, _ := newTestQueue(t, 10000)
	ids := make([]entity.OrderID, 0, 6)
	for i := int64(1); i <= 6; i++ {
		q.Add(pedido(entity.OrderID(i), impresora, 3, 0))
		ids = append(ids, entity.OrderID(i))
	}

	capacity := decimal.NewFromInt(10)
	res, err := q.Release(ids, capacity, 1)
	require.NoError(t, err)

	assert.False(t, res.CapacityUsed.GreaterThan(capacity))
	assert.Equal(t, []entity.OrderID{1, 2, 3}, res.Completed, "3+3+3 = 9 ≤ 10; el cuarto excedería")
}

func TestRelease_PedidoDesconocidoAbortaSinEfectos(t *testing.T) {
	q, led := newTestQueue(t, 100)
	q.Add(pedido(1, impresora, 2, 0))

	_, err := q.Release([]entity.OrderID{1, 99}, decimal.NewFromInt(10), 1)
	require.ErrorIs(t, err, domain.ErrUnknownOrder)

	o, _ := q.Get(1)
	assert.Equal(t, entity.ProductionPending, o.Status, "la validación previa impide efectos parciales")
	assert.True(t, led.OnHand(filamento).Equal(decimal.NewFromInt(100)))
}

// Un ID repetido en la selección liberaría el mismo pedido dos veces
// (doble débito de BOM, doble crédito de terminado, doble capacidad).
func TestRelease_SeleccionConIDRepetidoAborta(t *testing.T) {
	q, led := newTestQueue(t, 100)
	q.Add(pedido(1, impresora, 4, 0))

	res, err := q.Release([]entity.OrderID{1, 1}, decimal.NewFromInt(10), 1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, res.Completed)
	o, _ := q.Get(1)
	assert.Equal(t, entity.ProductionPending, o.Status)
	assert.True(t, led.OnHand(filamento).Equal(decimal.NewFromInt(100)), "sin débitos")
	assert.True(t, led.OnHand(impresora).IsZero(), "sin créditos")
}

func TestRelease_PedidoCompletadoNoEsLiberable(t *testing.T) {
	q, _ := newTestQueue(t, 100)
	q.Add(pedido(1, impresora, 2, 0))

	_, err := q.Release([]entity.OrderID{1}, decimal.NewFromInt(10), 1)
	require.NoError(t, err)

	_, err = q.Release([]entity.OrderID{1}, decimal.NewFromInt(10), 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un COMPLETED no puede reseleccionarse")
}

// Un pedido BLOCKED sigue siendo elegible y puede reintentarse otro día.
func TestRelease_BloqueadoReintentable(t *testing.T) {
	q, led := newTestQueue(t, 20)
	q.Add(pedido(1, impresora, 10, 0))

	_, err := q.Release([]entity.OrderID{1}, decimal.NewFromInt(10), 1)
	require.NoError(t, err)
	o, _ := q.Get(1)
	require.Equal(t, entity.ProductionBlocked, o.Status)

	// Llega material (simulado con un crédito directo) y se reintenta
	require.NoError(t, led.Credit(filamento, decimal.NewFromInt(40)))
	res, err := q.Release([]entity.OrderID{1}, decimal.NewFromInt(10), 2)
	require.NoError(t, err)

	assert.Equal(t, []entity.OrderID{1}, res.Completed)
	assert.Equal(t, entity.ProductionCompleted, o.Status)
}
