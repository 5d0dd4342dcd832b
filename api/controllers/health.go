package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/aurana-storefront/api/responses"
	"github.com/angelmondragon/aurana-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/aurana-storefront/pkg/errors"
	"github.com/angelmondragon/aurana-storefront/pkg/logger"
)

const (
	envHeader    = "X-Aurana-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, Redis. A nil redis
// pinger means Redis is not part of this deployment.
func HealthReady(cfg *config.Config, logg *logger.Logger, db Pinger, redis Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{}
		var failed error
		check := func(name string, p Pinger) {
			if p == nil {
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				if failed == nil {
					failed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable")
				}
				return
			}
			checks[name] = "ok"
		}
		check("database", db)
		check("redis", redis)

		if failed != nil {
			typed := pkgerrors.As(failed).WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, typed)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
