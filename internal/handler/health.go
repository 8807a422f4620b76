package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/worker"
)

// Health weighs each dependency by what the service needs from it. Postgres is
// hard-required (every arqueo derives from it), so losing it takes the service
// down. Redis only backs the tax-rate cache and the best-effort cierre queue —
// rates fall back to defaults and notifications stop, so losing it degrades
// the service instead of downing it.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return healthHandler(
		func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		func(ctx context.Context) (int64, int64) {
			pendientes, _ := rdb.LLen(ctx, worker.QueueCierre).Result()
			dlq, _ := worker.DLQLength(ctx, rdb, worker.QueueCierre)
			return pendientes, dlq
		},
	)
}

func healthHandler(pingDB, pingRedis func(context.Context) error, colaCierre func(context.Context) (int64, int64)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		estado := "ok"

		dbStatus := "connected"
		if pingDB(ctx) != nil {
			dbStatus = "error"
			estado = "down"
		}

		redisStatus := "connected"
		var pendientes, dlq int64
		if pingRedis(ctx) != nil {
			redisStatus = "error"
			if estado == "ok" {
				estado = "degraded"
			}
		} else {
			pendientes, dlq = colaCierre(ctx)
		}

		status := http.StatusOK
		if estado == "down" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"servicio":           "set-caja",
			"estado":             estado,
			"db":                 dbStatus,
			"redis":              redisStatus,
			"cierres_pendientes": pendientes,
			"cierres_dlq":        dlq,
		})
	}
}
