package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Event queue and pub/sub channels. Services enqueue domain events after
// their transaction commits; the worker pool dequeues them via BRPOP and
// republishes on the matching pub/sub channel for connected clients.
const (
	QueueEventos = "jobs:eventos"

	CanalInventario = "eventos:inventario_actualizado"
	CanalVentas     = "eventos:venta_realizada"
	CanalTasas      = "eventos:tasas_actualizadas"
)

// Evento is the generic envelope for all domain events.
type Evento struct {
	Canal     string          `json:"canal"`
	Payload   json.RawMessage `json:"payload"`
	EmitidoEn string          `json:"emitido_en"` // ISO 8601
}

// Notificador is what services see: fire-and-forget event publication.
// A nil Notificador is legal and means "no eventing" (unit tests).
type Notificador interface {
	Publicar(ctx context.Context, canal string, payload interface{})
}

// Dispatcher enqueues domain events into a Redis list. Publication is
// best-effort: a Redis outage must never fail the business transaction
// that already committed.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) Publicar(ctx context.Context, canal string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("canal", canal).Msg("dispatcher: payload no serializable")
		return
	}
	ev := Evento{
		Canal:     canal,
		Payload:   data,
		EmitidoEn: time.Now().UTC().Format(time.RFC3339),
	}
	encoded, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("canal", canal).Msg("dispatcher: evento no serializable")
		return
	}
	if err := d.rdb.LPush(ctx, QueueEventos, encoded).Err(); err != nil {
		log.Warn().Err(err).Str("canal", canal).Msg("dispatcher: no se pudo encolar el evento")
	}
}
