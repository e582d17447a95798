package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/domain"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
)

// DemandParams parámetros de la distribución de demanda diaria de un
// producto terminado: normal(media, varianza), recortada a >= 0 y
// redondeada a unidades enteras.
type DemandParams struct {
	Mean     float64
	Variance float64
}

// Config es el contrato de entrada del motor: catálogo, proveedores, stock
// inicial, capacidad diaria y parámetros de demanda, ya parseados por el
// cargador de escenario. Se valida una sola vez en NewEngine; después es
// inmutable.
type Config struct {
	Products         []entity.Product
	Suppliers        []entity.Supplier
	InitialInventory map[entity.ProductID]decimal.Decimal
	DailyCapacity    decimal.Decimal
	Demand           DemandParams
	// DemandOverrides permite ajustar la distribución por producto terminado;
	// los productos sin entrada usan Demand.
	DemandOverrides map[entity.ProductID]DemandParams
	Seed            int64
}

// Validate comprueba la coherencia del escenario antes de correr el primer
// día: IDs únicos, BOMs que referencian materias primas existentes,
// cantidades no negativas y proveedores que venden materias primas
// conocidas. Todos los fallos envuelven ErrInvalidConfig.
func (c Config) Validate() error {
	if len(c.Products) == 0 {
		return fmt.Errorf("catálogo vacío: %w", domain.ErrInvalidConfig)
	}
	if !c.DailyCapacity.IsPositive() {
		return fmt.Errorf("capacidad diaria debe ser positiva: %w", domain.ErrInvalidConfig)
	}
	if c.Demand.Mean < 0 || c.Demand.Variance < 0 {
		return fmt.Errorf("parámetros de demanda negativos: %w", domain.ErrInvalidConfig)
	}

	byID := make(map[entity.ProductID]entity.Product, len(c.Products))
	for _, p := range c.Products {
		if _, dup := byID[p.ID]; dup {
			return fmt.Errorf("producto %d duplicado: %w", p.ID, domain.ErrInvalidConfig)
		}
		if p.Type != entity.ProductTypeRaw && p.Type != entity.ProductTypeFinished {
			return fmt.Errorf("producto %d: tipo %q: %w", p.ID, p.Type, domain.ErrInvalidConfig)
		}
		if p.IsRaw() && len(p.BOM) > 0 {
			return fmt.Errorf("producto %d: una materia prima no lleva BOM: %w", p.ID, domain.ErrInvalidConfig)
		}
		byID[p.ID] = p
	}

	for _, p := range c.Products {
		for _, line := range p.BOM {
			material, ok := byID[line.MaterialID]
			if !ok {
				return fmt.Errorf("BOM de producto %d: material %d no existe: %w",
					p.ID, line.MaterialID, domain.ErrInvalidConfig)
			}
			if !material.IsRaw() {
				return fmt.Errorf("BOM de producto %d: material %d no es materia prima: %w",
					p.ID, line.MaterialID, domain.ErrInvalidConfig)
			}
			if line.Quantity.IsNegative() {
				return fmt.Errorf("BOM de producto %d: cantidad negativa para material %d: %w",
					p.ID, line.MaterialID, domain.ErrInvalidConfig)
			}
		}
	}

	seenSuppliers := make(map[entity.SupplierID]bool, len(c.Suppliers))
	for _, s := range c.Suppliers {
		if seenSuppliers[s.ID] {
			return fmt.Errorf("proveedor %d duplicado: %w", s.ID, domain.ErrInvalidConfig)
		}
		seenSuppliers[s.ID] = true
		for productID, detail := range s.Supplies {
			p, ok := byID[productID]
			if !ok || !p.IsRaw() {
				return fmt.Errorf("proveedor %d: producto %d no es materia prima del catálogo: %w",
					s.ID, productID, domain.ErrInvalidConfig)
			}
			if detail.LeadTimeDays < 0 {
				return fmt.Errorf("proveedor %d: lead time negativo para producto %d: %w",
					s.ID, productID, domain.ErrInvalidConfig)
			}
			if detail.UnitCost.IsNegative() {
				return fmt.Errorf("proveedor %d: costo negativo para producto %d: %w",
					s.ID, productID, domain.ErrInvalidConfig)
			}
		}
	}

	for productID, qty := range c.InitialInventory {
		if _, ok := byID[productID]; !ok {
			return fmt.Errorf("stock inicial de producto %d desconocido: %w", productID, domain.ErrInvalidConfig)
		}
		if qty.IsNegative() {
			return fmt.Errorf("stock inicial negativo para producto %d: %w", productID, domain.ErrInvalidConfig)
		}
	}

	for productID, params := range c.DemandOverrides {
		p, ok := byID[productID]
		if !ok || !p.IsFinished() {
			return fmt.Errorf("override de demanda para producto %d que no es terminado: %w",
				productID, domain.ErrInvalidConfig)
		}
		if params.Mean < 0 || params.Variance < 0 {
			return fmt.Errorf("override de demanda negativo para producto %d: %w", productID, domain.ErrInvalidConfig)
		}
	}

	return nil
}

// demandFor devuelve los parámetros de demanda efectivos de un producto.
func (c Config) demandFor(productID entity.ProductID) DemandParams {
	if params, ok := c.DemandOverrides[productID]; ok {
		return params
	}
	return c.Demand
}
