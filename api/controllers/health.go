package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/storely/wishsync/api/responses"
	"github.com/storely/wishsync/pkg/config"
	pkgerrors "github.com/storely/wishsync/pkg/errors"
	"github.com/storely/wishsync/pkg/logger"
)

// Pinger is anything that can confirm its datasource is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, "ok", map[string]string{"env": cfg.App.Env})
	}
}

// HealthReady reports readiness by pinging the database.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, "ready", map[string]string{"env": cfg.App.Env})
	}
}
