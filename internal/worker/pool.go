package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/dto"
)

const QueueCierre = "jobs:cierre_caja"

// Job is the generic envelope for async tasks pushed through Redis.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CierreJobPayload carries everything the cierre worker needs to render and
// mail the closing report without re-querying the database.
type CierreJobPayload struct {
	ToEmail  string                 `json:"to_email"`
	Operador string                 `json:"operador"`
	Cierre   dto.CierreCajaResponse `json:"cierre"`
}

// Dispatcher enqueues async jobs into Redis lists; the worker pool dequeues
// them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher { return &Dispatcher{rdb: rdb} }

// EnqueueCierre pushes a closing-report notification job.
func (d *Dispatcher) EnqueueCierre(ctx context.Context, payload CierreJobPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: "cierre_caja", Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueCierre, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the cierre queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, cierre *CierreWorker, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, cierre, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, cierre *CierreWorker, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx.
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueCierre).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}

			var job Job
			if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
				log.Error().Err(err).Int("worker", id).Msg("worker: invalid job envelope")
				SendToDLQ(ctx, rdb, QueueCierre, "unknown", json.RawMessage(result[1]), "invalid envelope", 1)
				continue
			}

			switch job.Type {
			case "cierre_caja":
				cierre.Process(ctx, rdb, job.Payload)
			default:
				log.Warn().Str("type", job.Type).Msg("worker: unknown job type")
			}
		}
	}
}
