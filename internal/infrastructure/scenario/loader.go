// Package scenario carga y valida el archivo JSON de escenario (catálogo,
// BOMs, proveedores, stock inicial, capacidad y parámetros de demanda) y lo
// convierte al contrato tipado del motor. El formato es compatible con el
// config_initial.json clásico del simulador.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/application/simulation"
	"github.com/jcastano/fabrica-sim/internal/domain"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
)

type bomItemJSON struct {
	MaterialID int64   `json:"material_id"`
	Quantity   float64 `json:"quantity"`
}

type demandJSON struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

type productJSON struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	UnitMeasure string        `json:"unit,omitempty"`
	BOM         []bomItemJSON `json:"bom,omitempty"`
	Demand      *demandJSON   `json:"demand,omitempty"` // override por producto
}

type supplierJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// supply_details: {"<product_id>": [costo_unitario, lead_time_dias]}
	SupplyDetails map[string][]float64 `json:"supply_details"`
}

type inventoryJSON struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type parametersJSON struct {
	DemandMean     float64 `json:"demand_mean"`
	DemandVariance float64 `json:"demand_variance"`
	RandomSeed     int64   `json:"random_seed,omitempty"`
}

type scenarioJSON struct {
	Parameters       parametersJSON  `json:"simulation_parameters"`
	DailyCapacity    int64           `json:"production_capacity_per_day"`
	Products         []productJSON   `json:"products"`
	Suppliers        []supplierJSON  `json:"suppliers"`
	InitialInventory []inventoryJSON `json:"initial_inventory"`
}

// Load lee el archivo de escenario y devuelve la configuración tipada del
// motor. Los errores estructurales envuelven ErrInvalidConfig; la coherencia
// semántica (IDs cruzados, signos) la revalida el motor en NewEngine.
func Load(path string) (simulation.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return simulation.Config{}, fmt.Errorf("leer escenario %s: %w", path, err)
	}
	return Parse(data)
}

// Parse convierte el JSON de escenario al contrato del motor.
func Parse(data []byte) (simulation.Config, error) {
	var raw scenarioJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return simulation.Config{}, fmt.Errorf("JSON de escenario malformado: %v: %w", err, domain.ErrInvalidConfig)
	}

	cfg := simulation.Config{
		DailyCapacity: decimal.NewFromInt(raw.DailyCapacity),
		Demand: simulation.DemandParams{
			Mean:     raw.Parameters.DemandMean,
			Variance: raw.Parameters.DemandVariance,
		},
		Seed:             raw.Parameters.RandomSeed,
		InitialInventory: make(map[entity.ProductID]decimal.Decimal, len(raw.InitialInventory)),
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	for _, p := range raw.Products {
		product := entity.Product{
			ID:          entity.ProductID(p.ID),
			Name:        p.Name,
			Type:        p.Type,
			UnitMeasure: p.UnitMeasure,
		}
		for _, line := range p.BOM {
			product.BOM = append(product.BOM, entity.BOMItem{
				MaterialID: entity.ProductID(line.MaterialID),
				Quantity:   decimal.NewFromFloat(line.Quantity),
			})
		}
		if p.Demand != nil {
			if cfg.DemandOverrides == nil {
				cfg.DemandOverrides = make(map[entity.ProductID]simulation.DemandParams)
			}
			cfg.DemandOverrides[product.ID] = simulation.DemandParams{
				Mean:     p.Demand.Mean,
				Variance: p.Demand.Variance,
			}
		}
		cfg.Products = append(cfg.Products, product)
	}

	for _, s := range raw.Suppliers {
		supplier := entity.Supplier{
			ID:       entity.SupplierID(s.ID),
			Name:     s.Name,
			Supplies: make(map[entity.ProductID]entity.SupplyDetail, len(s.SupplyDetails)),
		}
		for key, tuple := range s.SupplyDetails {
			productID, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return simulation.Config{}, fmt.Errorf("proveedor %d: clave de producto %q: %w",
					s.ID, key, domain.ErrInvalidConfig)
			}
			// El formato clásico es una tupla [costo, lead_time]
			if len(tuple) != 2 {
				return simulation.Config{}, fmt.Errorf("proveedor %d, producto %s: se esperaba [costo, lead_time]: %w",
					s.ID, key, domain.ErrInvalidConfig)
			}
			supplier.Supplies[entity.ProductID(productID)] = entity.SupplyDetail{
				UnitCost:     decimal.NewFromFloat(tuple[0]),
				LeadTimeDays: int(tuple[1]),
			}
		}
		cfg.Suppliers = append(cfg.Suppliers, supplier)
	}

	for _, item := range raw.InitialInventory {
		cfg.InitialInventory[entity.ProductID(item.ProductID)] = decimal.NewFromFloat(item.Quantity)
	}

	return cfg, nil
}
