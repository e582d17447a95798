package simulation_test

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/application/simulation"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
)

// IDs del escenario de prueba compartido (impresoras 3D, como el escenario
// de referencia del simulador).
const (
	impresora entity.ProductID = 1
	filamento entity.ProductID = 103
	motor     entity.ProductID = 102

	provFilamentos entity.SupplierID = 201
	provMotores    entity.SupplierID = 202
)

// newTestConfig arma un escenario mínimo coherente: una impresora que
// consume 5 de filamento por unidad, stock inicial parametrizable y
// capacidad diaria 10.
func newTestConfig(filamentoInicial int64) simulation.Config {
	return simulation.Config{
		Products: []entity.Product{
			{ID: impresora, Name: "Impresora 3D", Type: entity.ProductTypeFinished, BOM: []entity.BOMItem{
				{MaterialID: filamento, Quantity: decimal.NewFromInt(5)},
			}},
			{ID: filamento, Name: "Filamento", Type: entity.ProductTypeRaw},
			{ID: motor, Name: "Motor", Type: entity.ProductTypeRaw},
		},
		Suppliers: []entity.Supplier{
			{ID: provFilamentos, Name: "Filamentos Express", Supplies: map[entity.ProductID]entity.SupplyDetail{
				filamento: {UnitCost: decimal.NewFromFloat(12.5), LeadTimeDays: 4},
			}},
			{ID: provMotores, Name: "Motores SA", Supplies: map[entity.ProductID]entity.SupplyDetail{
				motor: {UnitCost: decimal.NewFromFloat(8.5), LeadTimeDays: 2},
			}},
		},
		InitialInventory: map[entity.ProductID]decimal.Decimal{
			filamento: decimal.NewFromInt(filamentoInicial),
		},
		DailyCapacity: decimal.NewFromInt(10),
		Demand:        simulation.DemandParams{Mean: 5, Variance: 2},
		Seed:          42,
	}
}

// pedido construye un pedido PENDING listo para encolar.
func pedido(id entity.OrderID, productID entity.ProductID, qty int64, day int) *entity.ProductionOrder {
	return &entity.ProductionOrder{
		ID:          id,
		ProductID:   productID,
		Quantity:    decimal.NewFromInt(qty),
		CreationDay: day,
		Status:      entity.ProductionPending,
	}
}
