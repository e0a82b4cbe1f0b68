package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/models"
	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
	id "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain"
	dErrors "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/domain-errors"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/httputil"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/requestcontext"
)

// Service defines the volunteer operations exposed over HTTP.
type Service interface {
	Clearance(ctx context.Context, volunteerID id.VolunteerID) (*vmodels.ClearanceView, error)
	Gates(ctx context.Context, volunteerID id.VolunteerID) (models.Gates, error)
	CompleteUnit(ctx context.Context, volunteerID id.VolunteerID, rawUnitID string) (*vmodels.CompletionResult, error)
	Import(ctx context.Context, records []vmodels.ImportRecord) (*vmodels.ImportResult, error)
}

// Handler wires volunteer endpoints to the volunteer service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a volunteer handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the per-volunteer endpoints on an authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/volunteers/{id}/clearance", h.HandleClearance)
	r.Get("/volunteers/{id}/gates", h.HandleGates)
	r.Post("/volunteers/{id}/completions", h.HandleCompleteUnit)
}

// RegisterAdmin mounts endpoints that require the admin claim.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/volunteers/import", h.HandleImport)
}

// HandleClearance handles GET /volunteers/{id}/clearance.
func (h *Handler) HandleClearance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	volunteerID, ok := h.authorizeVolunteer(w, r)
	if !ok {
		return
	}

	view, err := h.service.Clearance(ctx, volunteerID)
	if err != nil {
		h.logFailure(ctx, "clearance lookup failed", requestID, volunteerID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromClearance(view, requestcontext.Now(ctx)))
}

// HandleGates handles GET /volunteers/{id}/gates.
func (h *Handler) HandleGates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	volunteerID, ok := h.authorizeVolunteer(w, r)
	if !ok {
		return
	}

	gates, err := h.service.Gates(ctx, volunteerID)
	if err != nil {
		h.logFailure(ctx, "gates lookup failed", requestID, volunteerID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromGates(volunteerID, gates))
}

// HandleCompleteUnit handles POST /volunteers/{id}/completions. A newly
// recorded unit answers 201; a unit already on record answers 200.
func (h *Handler) HandleCompleteUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	volunteerID, ok := h.authorizeVolunteer(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CompleteUnitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CompleteUnit(ctx, volunteerID, req.UnitID)
	if err != nil {
		h.logFailure(ctx, "unit completion failed", requestID, volunteerID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "unit completion recorded",
		"request_id", requestID,
		"volunteer_id", volunteerID.String(),
		"unit_id", string(result.UnitID),
		"already_complete", result.AlreadyComplete,
		"promoted", result.Promotion != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	status := http.StatusCreated
	if result.AlreadyComplete {
		status = http.StatusOK
	}
	httputil.WriteJSON(w, status, FromCompletion(result))
}

// HandleImport handles POST /admin/volunteers/import. Per-row failures are
// reported in the body; the batch itself answers 200.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ImportRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Import(ctx, req.ParsedRecords())
	if err != nil {
		h.logger.ErrorContext(ctx, "volunteer import failed",
			"request_id", requestID,
			"records", len(req.Volunteers),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "volunteer import served",
		"request_id", requestID,
		"imported", result.Imported,
		"failed", result.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromImport(result))
}

// authorizeVolunteer parses the path id and allows the volunteer themselves or
// an admin. On failure it writes the response.
func (h *Handler) authorizeVolunteer(w http.ResponseWriter, r *http.Request) (id.VolunteerID, bool) {
	ctx := r.Context()
	caller := requestcontext.VolunteerID(ctx)
	if caller.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.VolunteerID{}, false
	}

	volunteerID, err := id.ParseVolunteerID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.VolunteerID{}, false
	}
	if volunteerID != caller && !requestcontext.IsAdmin(ctx) {
		h.logger.WarnContext(ctx, "access to another volunteer denied",
			"request_id", requestcontext.RequestID(ctx),
			"caller_id", caller.String(),
			"volunteer_id", volunteerID.String(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "cannot access another volunteer"))
		return id.VolunteerID{}, false
	}
	return volunteerID, true
}

func (h *Handler) logFailure(ctx context.Context, msg, requestID string, volunteerID id.VolunteerID, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestID,
		"volunteer_id", volunteerID.String(),
		"error", err,
	)
}
