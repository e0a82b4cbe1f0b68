// Package httptransport assembles the HTTP surface: shared middleware, health
// and metrics endpoints, and the authenticated module routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	registrationHandler "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/handler"
	volunteerHandler "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/handler"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/httputil"
	adminmw "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/middleware/admin"
	authmw "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/middleware/auth"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/middleware/metadata"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/middleware/request"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Dependencies are the collaborators the router mounts.
type Dependencies struct {
	Logger       *slog.Logger
	Observer     request.Observer
	Validator    authmw.JWTValidator
	Registration *registrationHandler.Handler
	Volunteers   *volunteerHandler.Handler
	Checks       map[string]HealthCheck
	// Clock overrides the request clock in tests.
	Clock func() time.Time
}

// NewRouter wires every public endpoint.
func NewRouter(deps Dependencies) http.Handler {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(deps.Logger))
	r.Use(metadata.ClientMetadata)
	r.Use(request.Observe(deps.Logger, deps.Observer))
	r.Use(requesttime.MiddlewareWithClock(clock))

	r.Get("/healthz", healthHandler(deps.Checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(deps.Validator, deps.Logger))
		deps.Registration.Register(r)
		deps.Volunteers.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(adminmw.RequireAdmin(deps.Logger))
			deps.Volunteers.RegisterAdmin(r)
		})
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
