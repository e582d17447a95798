package planning_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/fabrica-sim/internal/domain"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
	"github.com/jcastano/fabrica-sim/internal/domain/ledger"
	"github.com/jcastano/fabrica-sim/internal/domain/planning"
)

const (
	impresora entity.ProductID = 1
	soporte   entity.ProductID = 2
	filamento entity.ProductID = 103
	motor     entity.ProductID = 102
)

func testCatalog() []entity.Product {
	return []entity.Product{
		{ID: impresora, Name: "Impresora", Type: entity.ProductTypeFinished, BOM: []entity.BOMItem{
			{MaterialID: filamento, Quantity: decimal.NewFromInt(5)},
			{MaterialID: motor, Quantity: decimal.NewFromInt(4)},
		}},
		// ratio fraccionario: 0.5 kg de filamento por soporte
		{ID: soporte, Name: "Soporte", Type: entity.ProductTypeFinished, BOM: []entity.BOMItem{
			{MaterialID: filamento, Quantity: decimal.NewFromFloat(0.5)},
		}},
		{ID: filamento, Name: "Filamento", Type: entity.ProductTypeRaw},
		{ID: motor, Name: "Motor", Type: entity.ProductTypeRaw},
	}
}

func TestBOMResolver_RequirementFor(t *testing.T) {
	r := planning.NewBOMResolver(testCatalog())

	req, err := r.RequirementFor(impresora, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, req[filamento].Equal(decimal.NewFromInt(50)), "10 impresoras × 5 = 50 de filamento")
	assert.True(t, req[motor].Equal(decimal.NewFromInt(40)), "10 impresoras × 4 = 40 motores")
}

// La política de redondeo es fija: truncar hacia cero a unidades enteras.
func TestBOMResolver_TruncaRatiosFraccionarios(t *testing.T) {
	r := planning.NewBOMResolver(testCatalog())

	req, err := r.RequirementFor(soporte, decimal.NewFromInt(5))
	require.NoError(t, err)
	// 5 × 0.5 = 2.5 → truncado a 2
	assert.True(t, req[filamento].Equal(decimal.NewFromInt(2)),
		"2.5 unidades deben truncarse a 2, no redondearse a 3")
}

func TestBOMResolver_ProductoInvalido(t *testing.T) {
	r := planning.NewBOMResolver(testCatalog())

	_, err := r.RequirementFor(filamento, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidProduct, "una materia prima no tiene BOM")

	_, err = r.RequirementFor(entity.ProductID(999), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestBOMResolver_AggregateRequirement(t *testing.T) {
	r := planning.NewBOMResolver(testCatalog())

	orders := []*entity.ProductionOrder{
		{ID: 1, ProductID: impresora, Quantity: decimal.NewFromInt(2)},
		{ID: 2, ProductID: impresora, Quantity: decimal.NewFromInt(3)},
		{ID: 3, ProductID: soporte, Quantity: decimal.NewFromInt(4)},
	}
	total, err := r.AggregateRequirement(orders)
	require.NoError(t, err)

	// filamento: 2×5 + 3×5 + trunc(4×0.5) = 10 + 15 + 2 = 27
	assert.True(t, total[filamento].Equal(decimal.NewFromInt(27)))
	// motor: 2×4 + 3×4 = 20
	assert.True(t, total[motor].Equal(decimal.NewFromInt(20)))
}

func TestShortageCalculator_DeficitYOmision(t *testing.T) {
	led := ledger.New(testCatalog(), map[entity.ProductID]decimal.Decimal{
		filamento: decimal.NewFromInt(20),
		motor:     decimal.NewFromInt(100),
	})
	calc := planning.NewShortageCalculator(led)

	shortages := calc.Shortages(map[entity.ProductID]decimal.Decimal{
		filamento: decimal.NewFromInt(50), // faltan 30
		motor:     decimal.NewFromInt(40), // cubierto
	})

	require.Len(t, shortages, 1, "las materias cubiertas se omiten del mapa")
	assert.True(t, shortages[filamento].Equal(decimal.NewFromInt(30)))
	_, present := shortages[motor]
	assert.False(t, present, "requerimiento satisfecho no debe aparecer, ni siquiera en cero")
}

func TestShortageCalculator_NuncaNegativo(t *testing.T) {
	led := ledger.New(testCatalog(), map[entity.ProductID]decimal.Decimal{
		filamento: decimal.NewFromInt(500),
	})
	calc := planning.NewShortageCalculator(led)

	shortages := calc.Shortages(map[entity.ProductID]decimal.Decimal{
		filamento: decimal.NewFromInt(50),
	})
	assert.Empty(t, shortages, "con sobrestock no hay faltantes")
}
