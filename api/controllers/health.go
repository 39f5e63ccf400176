package controllers

import (
	"net/http"

	"github.com/timeeasy/backend/api/responses"
	"github.com/timeeasy/backend/pkg/config"
	"github.com/timeeasy/backend/pkg/db"
	pkgerrors "github.com/timeeasy/backend/pkg/errors"
	"github.com/timeeasy/backend/pkg/logger"
	"github.com/timeeasy/backend/pkg/redis"
)

// Healthz reports liveness plus readiness of the datasources.
func Healthz(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ok", "env": cfg.App.Env})
	}
}

// TestPing keeps the historical liveness probe endpoint alive.
func TestPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"message": "Server is running"})
	}
}
