package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/aromacraft/storefront-backend/api/responses"
	"github.com/aromacraft/storefront-backend/pkg/config"
	"github.com/aromacraft/storefront-backend/pkg/db"
	"github.com/aromacraft/storefront-backend/pkg/logger"
)

const readyProbeTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AromaCraft-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and redis; either failing flips the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AromaCraft-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["db"] = probe(ctx, dbP)
		if checks["db"] != "ok" {
			healthy = false
		}
		checks["redis"] = probe(ctx, redisP)
		if checks["redis"] != "ok" {
			healthy = false
		}

		status := "ready"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
			if logg != nil {
				logCtx := logg.WithFields(ctx, map[string]any{"checks": checks})
				logg.Warn(logCtx, "health.ready.degraded")
			}
		}

		responses.WriteSuccessStatus(w, code, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}

func probe(ctx context.Context, p db.Pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
