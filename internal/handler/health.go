package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether the ledger engine can reach its Postgres and Redis
// backends. Degraded dependencies answer 503 so the terminal can warn the
// cashier before a sale fails mid-transaction.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		estadoDB := "conectado"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			estadoDB = "error"
		}

		estadoRedis := "conectado"
		if rdb.Ping(ctx).Err() != nil {
			estadoRedis = "error"
		}

		status := http.StatusOK
		if estadoDB != "conectado" || estadoRedis != "conectado" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":       status == http.StatusOK,
			"servicio": "pegasus",
			"db":       estadoDB,
			"redis":    estadoRedis,
		})
	}
}
