package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/neexbeast/travelviz/internal/datasource"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

type healthBody struct {
	Status string          `json:"status"`
	Mode   datasource.Mode `json:"mode"`
	DB     string          `json:"db"`
	Redis  string          `json:"redis"`
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis
// connectivity and reports the data source mode. Demo mode alone does not
// degrade the service.
func HealthHandlerFunc(mode datasource.Mode, db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		body := healthBody{Status: "ok", Mode: mode, DB: "ok", Redis: "ok"}
		status := http.StatusOK

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			body.DB = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			body.Redis = "error"
			status = http.StatusServiceUnavailable
		}

		if status != http.StatusOK {
			body.Status = "degraded"
		}
		writeJSON(w, status, body)
	}
}
