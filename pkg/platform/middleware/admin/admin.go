package admin

import (
	"log/slog"
	"net/http"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// RequireAdmin rejects callers whose token did not carry the admin claim.
// It must run after auth.RequireAuth.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !requestcontext.IsAdmin(ctx) {
				logger.WarnContext(ctx, "admin claim required",
					"request_id", requestcontext.RequestID(ctx),
					"volunteer_id", requestcontext.VolunteerID(ctx).String(),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"admin claim required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
