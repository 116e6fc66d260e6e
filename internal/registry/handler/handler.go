package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"lostfound/internal/events"
	"lostfound/internal/platform/middleware"
	"lostfound/internal/registry"
	dErrors "lostfound/pkg/domain-errors"
)

// Service defines the registry operations the HTTP layer exposes.
type Service interface {
	CreateReport(ctx context.Context, input registry.CreateReportInput, caller string) (int64, error)
	ScanForMatches(ctx context.Context, newReportID int64) error
	InitiateClaim(ctx context.Context, lostID, foundID int64, caller string) error
	ConfirmHandover(ctx context.Context, lostID, foundID int64, caller string) error
	GetReport(ctx context.Context, id int64) (registry.Report, error)
}

// EventLog exposes the recent tail of the notification stream for observers
// that poll over HTTP instead of consuming Kafka.
type EventLog interface {
	Recent(n int) []events.Event
}

// Handler is the thin HTTP layer over the registry service. It decodes
// requests, extracts the authenticated caller, and delegates; business logic
// stays in the service.
type Handler struct {
	logger    *slog.Logger
	registry  Service
	eventLog  EventLog
	validator middleware.TokenValidator
}

// New creates a registry Handler.
func New(registrySvc Service, eventLog EventLog, validator middleware.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		registry:  registrySvc,
		eventLog:  eventLog,
		validator: validator,
	}
}

// Register wires the registry routes onto the chi router. Reads are public;
// every mutating route requires a valid bearer token.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)

		r.Get("/reports/{id}", h.handleGetReport)
		r.Get("/events", h.handleListEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.validator, h.logger))
			r.Post("/reports", h.handleCreateReport)
			r.Post("/reports/{id}/scan", h.handleScan)
			r.Post("/claims", h.handleInitiateClaim)
			r.Post("/claims/handover", h.handleConfirmHandover)
		})
	})
}

func (h *Handler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := h.registry.CreateReport(ctx, input, caller)
	if err != nil {
		h.logFailure(ctx, "create report failed", err)
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, h.logger, r, CreateReportResponse{ID: id})
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.registry.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, h.logger, r, toReportResponse(report))
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.registry.ScanForMatches(r.Context(), id); err != nil {
		h.logFailure(r.Context(), "match scan failed", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleInitiateClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.registry.InitiateClaim(ctx, req.LostID, req.FoundID, caller); err != nil {
		h.logFailure(ctx, "initiate claim failed", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleConfirmHandover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.registry.ConfirmHandover(ctx, req.LostID, req.FoundID, caller); err != nil {
		h.logFailure(ctx, "confirm handover failed", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, h.logger, r, EventsResponse{Events: h.eventLog.Recent(limit)})
}

// caller pulls the authenticated identity out of the request context. A miss
// means RequireAuth was not applied to the route, which is a wiring bug.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := middleware.GetReporterID(r.Context())
	if caller == "" {
		h.logger.ErrorContext(r.Context(), "reporter identity missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return "", false
	}
	return caller, true
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", middleware.GetRequestID(ctx))
		return
	}
	h.logger.WarnContext(ctx, msg, "error", err, "code", code, "request_id", middleware.GetRequestID(ctx))
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "report id must be an integer")
	}
	return id, nil
}

// writeError centralizes domain error translation to HTTP responses so every
// handler returns the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": string(code),
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, r *http.Request, payload any) {
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.ErrorContext(r.Context(), "failed to write response",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}
}
