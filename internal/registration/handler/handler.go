package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/httputil"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// Service defines the interface for registration validation.
type Service interface {
	Validate(ctx context.Context, req registration.Request) (registration.Verdict, error)
}

// Handler wires registration endpoints to the registration service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registration handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts registration endpoints on an authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registrations/validate", h.HandleValidate)
}

// HandleValidate handles POST /registrations/validate. A volunteer may only
// validate themselves; admins may validate anyone.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	caller := requestcontext.VolunteerID(ctx)
	if caller.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	volunteerID := req.ParsedVolunteerID()
	if volunteerID.IsNil() {
		volunteerID = caller
	}
	if volunteerID != caller && !requestcontext.IsAdmin(ctx) {
		h.logger.WarnContext(ctx, "registration validation for another volunteer denied",
			"request_id", requestID,
			"caller_id", caller.String(),
			"volunteer_id", volunteerID.String(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "cannot validate registration for another volunteer"))
		return
	}

	verdict, err := h.service.Validate(ctx, registration.Request{
		VolunteerID: volunteerID,
		Target:      req.ParsedTarget(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "registration validation failed",
			"request_id", requestID,
			"volunteer_id", volunteerID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "registration validation served",
		"request_id", requestID,
		"volunteer_id", volunteerID.String(),
		"can_register", verdict.CanRegister,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromVerdict(volunteerID, req.ParsedTarget(), verdict, requestcontext.Now(ctx)))
}
