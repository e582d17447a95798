package simulation

import (
	"math"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/domain/entity"
)

// DemandGenerator produce los pedidos de fabricación nuevos de cada día a
// partir de una normal(media, varianza) por producto terminado, recortada a
// >= 0 y redondeada a unidades enteras.
//
// La fuente aleatoria se inyecta con semilla fija: es la única fuente de no
// determinismo del motor, así que con la misma semilla y configuración la
// secuencia de demanda es idéntica entre corridas.
type DemandGenerator struct {
	cfg      Config
	finished []entity.ProductID // orden estable de generación
	rng      *rand.Rand
	nextID   entity.OrderID
}

// NewDemandGenerator construye el generador con su propia fuente aleatoria.
func NewDemandGenerator(cfg Config, seed int64) *DemandGenerator {
	var finished []entity.ProductID
	for _, p := range cfg.Products {
		if p.IsFinished() {
			finished = append(finished, p.ID)
		}
	}
	// Orden estable por ID: el orden de iteración no puede depender del mapa
	// o la reproducibilidad por semilla se rompe.
	sort.Slice(finished, func(i, j int) bool { return finished[i] < finished[j] })

	return &DemandGenerator{
		cfg:      cfg,
		finished: finished,
		rng:      rand.New(rand.NewSource(seed)),
		nextID:   1,
	}
}

// Generate produce cero o más pedidos PENDING para el día dado, uno por
// producto terminado con demanda positiva.
func (g *DemandGenerator) Generate(currentDay int) []*entity.ProductionOrder {
	var orders []*entity.ProductionOrder
	for _, productID := range g.finished {
		params := g.cfg.demandFor(productID)
		qty := g.draw(params)
		if qty <= 0 {
			continue
		}
		orders = append(orders, &entity.ProductionOrder{
			ID:          g.nextID,
			ProductID:   productID,
			Quantity:    decimal.NewFromInt(qty),
			CreationDay: currentDay,
			Status:      entity.ProductionPending,
		})
		g.nextID++
	}
	return orders
}

// draw muestrea la normal y la lleva a unidades enteras no negativas.
func (g *DemandGenerator) draw(params DemandParams) int64 {
	sample := g.rng.NormFloat64()*math.Sqrt(params.Variance) + params.Mean
	qty := int64(math.Round(sample))
	if qty < 0 {
		return 0
	}
	return qty
}
