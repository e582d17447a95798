package simulation

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastano/fabrica-sim/internal/domain/entity"
	"github.com/jcastano/fabrica-sim/pkg/logger"
)

// Journal registra en memoria cada cambio de estado de la simulación, en
// orden de ocurrencia. Alimenta el panel de histórico de la vista.
type Journal struct {
	events []entity.Event
	log    *logger.Logger
}

// NewJournal construye el diario vacío.
func NewJournal(log *logger.Logger) *Journal {
	return &Journal{log: log}
}

// Append agrega un evento al diario y lo refleja en el log estructurado.
func (j *Journal) Append(eventType string, simDay int, details map[string]any) {
	j.events = append(j.events, entity.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		SimDay:    simDay,
		Details:   details,
		CreatedAt: time.Now(),
	})
	j.log.Debug().Str("evento", eventType).Int("dia", simDay).Fields(details).Msg("evento de simulación")
}

// Events devuelve una copia del diario completo, en orden.
func (j *Journal) Events() []entity.Event {
	out := make([]entity.Event, len(j.events))
	copy(out, j.events)
	return out
}

// EventsForDay devuelve los eventos de un día simulado concreto.
func (j *Journal) EventsForDay(simDay int) []entity.Event {
	var out []entity.Event
	for _, e := range j.events {
		if e.SimDay == simDay {
			out = append(out, e)
		}
	}
	return out
}
