package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// StartWorkerPool launches numWorkers goroutines consuming the event queue.
// Each goroutine blocks on BRPOP, so an idle pool costs nothing.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueEventos).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processEvento(ctx, rdb, result[1])
		}
	}
}

// processEvento republishes the queued event on its pub/sub channel so
// subscribed clients (dashboards, secondary terminals) refresh live.
func processEvento(ctx context.Context, rdb *redis.Client, raw string) {
	var ev Evento
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		SendToDLQ(ctx, rdb, QueueEventos, "evento", json.RawMessage(raw), "payload ilegible: "+err.Error())
		return
	}
	if err := rdb.Publish(ctx, ev.Canal, string(ev.Payload)).Err(); err != nil {
		SendToDLQ(ctx, rdb, QueueEventos, ev.Canal, ev.Payload, "publish fallido: "+err.Error())
		return
	}
	log.Debug().Str("canal", ev.Canal).Msg("evento publicado")
}
