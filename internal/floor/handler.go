package floor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 16

type Handler struct {
	logger aqm.Logger
	config *aqm.Config
	tlm    *telemetry.HTTP
	floor  *Floor
}

func NewHandler(floor *Floor, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		logger: logger,
		config: config,
		tlm:    telemetry.NewHTTP(),
		floor:  floor,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tables", func(r chi.Router) {
		r.Get("/", h.ListTables)
		r.Post("/", h.AddTable)
		r.Get("/{id}", h.GetTable)
		r.Delete("/{id}", h.RemoveTable)
		r.Patch("/{id}/status", h.SetStatus)
		r.Patch("/{id}/position", h.MoveTable)
		r.Post("/{id}/clear", h.ClearTable)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTables")
	defer finish()

	log := h.log(r)

	tables, err := h.floor.List(r.Context())
	if err != nil {
		log.Error("error retrieving tables", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not retrieve tables")
		return
	}

	aqm.RespondCollection(w, tables, "table")
}

func (h *Handler) AddTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddTable")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var req TableCreateRequest
	if r.ContentLength != 0 {
		var ok bool
		req, ok = decodePayload[TableCreateRequest](w, r, log)
		if !ok {
			return
		}
	}

	if validationErrors := ValidateTableCreate(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	table, err := h.floor.AddTable(ctx, req.Capacity)
	if err != nil {
		log.Error("cannot add table", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not add table")
		return
	}

	log.Info("table added", "id", table.ID.String(), "number", table.Number)
	links := aqm.RESTfulLinksFor(table)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, table, links...)
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetTable")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	table, err := h.floor.Get(r.Context(), id)
	if err != nil {
		log.Debug("table not found", "error", err, "id", id.String())
		aqm.RespondError(w, http.StatusNotFound, "Table not found")
		return
	}

	links := aqm.RESTfulLinksFor(table)
	aqm.RespondSuccess(w, table, links...)
}

func (h *Handler) RemoveTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveTable")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.floor.RemoveTable(r.Context(), id); err != nil {
		h.respondFloorError(w, log, err, "Could not remove table")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetStatus is the manual override used by floor staff.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SetStatus")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	req, ok := decodePayload[TableStatusRequest](w, r, log)
	if !ok {
		return
	}

	if validationErrors := ValidateTableStatus(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	table, err := h.floor.SetStatus(ctx, id, req.Status)
	if err != nil {
		h.respondFloorError(w, log, err, "Could not update table status")
		return
	}

	links := aqm.RESTfulLinksFor(table)
	aqm.RespondSuccess(w, table, links...)
}

func (h *Handler) MoveTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MoveTable")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	req, ok := decodePayload[TablePositionRequest](w, r, log)
	if !ok {
		return
	}

	if validationErrors := ValidateTablePosition(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	table, err := h.floor.MoveTable(ctx, id, req.X, req.Y)
	if err != nil {
		h.respondFloorError(w, log, err, "Could not move table")
		return
	}

	links := aqm.RESTfulLinksFor(table)
	aqm.RespondSuccess(w, table, links...)
}

func (h *Handler) ClearTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ClearTable")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	table, err := h.floor.ClearTable(r.Context(), id)
	if err != nil {
		h.respondFloorError(w, log, err, "Could not clear table")
		return
	}

	links := aqm.RESTfulLinksFor(table)
	aqm.RespondSuccess(w, table, links...)
}

func (h *Handler) respondFloorError(w http.ResponseWriter, log aqm.Logger, err error, msg string) {
	switch {
	case errors.Is(err, ErrTableNotFound):
		aqm.RespondError(w, http.StatusNotFound, "Table not found")
	case errors.Is(err, ErrTableNotDirty):
		aqm.RespondError(w, http.StatusConflict, "Table is not dirty")
	case errors.Is(err, ErrInvalidStatus):
		aqm.RespondError(w, http.StatusBadRequest, "Invalid table status")
	default:
		log.Error(msg, "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, msg)
	}
}

func parseIDParam(w http.ResponseWriter, r *http.Request, log aqm.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		aqm.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

func decodePayload[T any](w http.ResponseWriter, r *http.Request, log aqm.Logger) (T, bool) {
	var req T

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return req, false
	}

	return req, true
}

func respondValidationErrors(w http.ResponseWriter, errors []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "Validation failed",
		"errors": errors,
	})
}
