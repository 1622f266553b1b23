package controllers

import (
	"context"
	"net/http"

	"github.com/parisy/pasarsayur-backend/api/responses"
	"github.com/parisy/pasarsayur-backend/pkg/config"
	"github.com/parisy/pasarsayur-backend/pkg/logger"
	pkgredis "github.com/parisy/pasarsayur-backend/pkg/redis"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PasarSayur-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when both backing stores answer.
func HealthReady(cfg *config.Config, db dbPinger, cache pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PasarSayur-Env", cfg.App.Env)

		checks := map[string]string{"database": "ok", "redis": "ok"}
		healthy := true
		if db == nil {
			checks["database"] = "not configured"
			healthy = false
		} else if err := db.Ping(r.Context()); err != nil {
			logg.Error(r.Context(), "database ping failed", err)
			checks["database"] = "unreachable"
			healthy = false
		}
		if cache == nil {
			checks["redis"] = "not configured"
			healthy = false
		} else if err := cache.Ping(r.Context()); err != nil {
			logg.Error(r.Context(), "redis ping failed", err)
			checks["redis"] = "unreachable"
			healthy = false
		}

		if !healthy {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]any{
				"status": "degraded",
				"checks": checks,
			})
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
