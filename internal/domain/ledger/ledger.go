// Package ledger implementa el libro de inventario: cantidades en mano por
// producto, con débitos y créditos que nunca dejan saldos negativos.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/domain"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
)

// Ledger es la fuente autoritativa de stock. Solo Debit/Credit/DebitMany
// mutan cantidades; todo producto del catálogo tiene una entrada (0 si no
// se dio stock inicial).
type Ledger struct {
	onHand map[entity.ProductID]decimal.Decimal
}

// New construye el libro con el stock inicial. Todo producto del catálogo
// queda registrado aunque no tenga stock inicial.
func New(catalog []entity.Product, initial map[entity.ProductID]decimal.Decimal) *Ledger {
	onHand := make(map[entity.ProductID]decimal.Decimal, len(catalog))
	for _, p := range catalog {
		onHand[p.ID] = decimal.Zero
	}
	for id, qty := range initial {
		if _, ok := onHand[id]; ok {
			onHand[id] = qty
		}
	}
	return &Ledger{onHand: onHand}
}

// OnHand devuelve el stock actual de un producto (0 si es desconocido).
func (l *Ledger) OnHand(productID entity.ProductID) decimal.Decimal {
	qty, ok := l.onHand[productID]
	if !ok {
		return decimal.Zero
	}
	return qty
}

// Credit suma qty al stock del producto. Falla con ErrInvalidProduct si el
// producto no existe en el catálogo y con ErrInvalidInput si qty es negativa.
func (l *Ledger) Credit(productID entity.ProductID, qty decimal.Decimal) error {
	current, ok := l.onHand[productID]
	if !ok {
		return fmt.Errorf("credit producto %d: %w", productID, domain.ErrInvalidProduct)
	}
	if qty.IsNegative() {
		return fmt.Errorf("credit producto %d: cantidad negativa: %w", productID, domain.ErrInvalidInput)
	}
	l.onHand[productID] = current.Add(qty)
	return nil
}

// Debit resta qty del stock del producto. Falla con ErrInsufficientStock sin
// modificar nada si qty > stock actual.
func (l *Ledger) Debit(productID entity.ProductID, qty decimal.Decimal) error {
	current, ok := l.onHand[productID]
	if !ok {
		return fmt.Errorf("debit producto %d: %w", productID, domain.ErrInvalidProduct)
	}
	if qty.IsNegative() {
		return fmt.Errorf("debit producto %d: cantidad negativa: %w", productID, domain.ErrInvalidInput)
	}
	if qty.GreaterThan(current) {
		return fmt.Errorf("debit producto %d (pedido %s, en mano %s): %w",
			productID, qty.String(), current.String(), domain.ErrInsufficientStock)
	}
	l.onHand[productID] = current.Sub(qty)
	return nil
}

// DebitMany aplica un lote de débitos como transacción todo-o-nada: si alguna
// línea dejaría el saldo negativo, ninguna línea se aplica. Se validan todas
// las líneas y se calculan los saldos nuevos antes de escribir el primero,
// de modo que ningún lector puede observar un lote a medias.
func (l *Ledger) DebitMany(lines map[entity.ProductID]decimal.Decimal) error {
	next := make(map[entity.ProductID]decimal.Decimal, len(lines))
	for productID, qty := range lines {
		current, ok := l.onHand[productID]
		if !ok {
			return fmt.Errorf("debit producto %d: %w", productID, domain.ErrInvalidProduct)
		}
		if qty.IsNegative() {
			return fmt.Errorf("debit producto %d: cantidad negativa: %w", productID, domain.ErrInvalidInput)
		}
		if qty.GreaterThan(current) {
			return fmt.Errorf("debit producto %d (pedido %s, en mano %s): %w",
				productID, qty.String(), current.String(), domain.ErrInsufficientStock)
		}
		next[productID] = current.Sub(qty)
	}
	for productID, qty := range next {
		l.onHand[productID] = qty
	}
	return nil
}

// Snapshot devuelve una copia del stock actual para la capa de presentación.
func (l *Ledger) Snapshot() map[entity.ProductID]decimal.Decimal {
	out := make(map[entity.ProductID]decimal.Decimal, len(l.onHand))
	for id, qty := range l.onHand {
		out[id] = qty
	}
	return out
}
