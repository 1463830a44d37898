package order

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/pkg/enums/orderstatus"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger aqm.Logger
	config *aqm.Config
	tlm    *telemetry.HTTP
	engine *Engine
}

func NewHandler(engine *Engine, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		logger: logger,
		config: config,
		tlm:    telemetry.NewHTTP(),
		engine: engine,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/open", h.FindOpenOrder)
		r.Get("/{id}", h.GetOrder)
		r.Put("/{id}", h.UpdateOrder)
		r.Post("/{id}/items", h.AddMenuItem)
		r.Patch("/{id}/items/{itemID}/quantity", h.AdjustItemQuantity)
		r.Patch("/{id}/items/{itemID}/ready", h.MarkItemReady)
		r.Post("/{id}/pay", h.Pay)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && orderstatus.ByName(status) == nil {
		aqm.RespondError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	orders, err := h.engine.List(r.Context(), status)
	if err != nil {
		log.Error("error retrieving orders", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	aqm.RespondCollection(w, orders, "order")
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	req, ok := decodePayload[DraftRequest](w, r, log)
	if !ok {
		return
	}

	if validationErrors := ValidateDraftRequest(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	draft, err := h.engine.NewDraft(ctx, req)
	if err != nil {
		h.respondEngineError(w, log, err, "Could not create order")
		return
	}

	if validationErrors := draft.Validate(); len(validationErrors) > 0 {
		log.Debug("draft validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	o, err := h.engine.CreateOrder(ctx, draft)
	if err != nil {
		h.respondEngineError(w, log, err, "Could not create order")
		return
	}

	log.Info("order created", "id", o.ID.String(), "total", o.Total.StringFixed(2))
	links := aqm.RESTfulLinksFor(o)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, o, links...)
}

func (h *Handler) FindOpenOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.FindOpenOrder")
	defer finish()

	log := h.log(r)

	tableID, err := uuid.Parse(r.URL.Query().Get("table_id"))
	if err != nil {
		log.Debug("invalid table_id parameter", "table_id", r.URL.Query().Get("table_id"))
		aqm.RespondError(w, http.StatusBadRequest, "Invalid table_id parameter")
		return
	}

	o, err := h.engine.FindOpenOrderForTable(r.Context(), tableID)
	if err != nil {
		h.respondEngineError(w, log, err, "Could not find open order")
		return
	}

	links := aqm.RESTfulLinksFor(o)
	aqm.RespondSuccess(w, o, links...)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, "id", log)
	if !ok {
		return
	}

	o, err := h.engine.Get(r.Context(), id)
	if err != nil {
		log.Debug("order not found", "error", err, "id", id.String())
		aqm.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	links := aqm.RESTfulLinksFor(o)
	aqm.RespondSuccess(w, o, links...)
}

// UpdateOrder replaces the whole order, status included.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := parseIDParam(w, r, "id", log)
	if !ok {
		return
	}

	req, ok := decodePayload[OrderUpdateRequest](w, r, log)
	if !ok {
		return
	}

	if validationErrors := ValidateOrderUpdate(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	o, err := h.engine.UpdateOrder(ctx, req.ToOrder(id))
	if err != nil {
		h.respondEngineError(w, log, err, "Could not update order")
		return
	}

	links := aqm.RESTfulLinksFor(o)
	aqm.RespondSuccess(w, o, links...)
}

func (h *Handler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddMenuItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := parseIDParam(w, r, "id", log)
	if !ok {
		return
	}

	req, ok := decodePayload[AddItemRequest](w, r, log)
	if !ok {
		return
	}

	if validationErrors := ValidateAddItem(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	o, _, err := h.engine.AddMenuItem(ctx, id, req.MenuItemID, req.Modifiers)
	if err != nil {
		h.respondEngineError(w, log, err, "Could not add item")
		return
	}

	links := aqm.RESTfulLinksFor(o)
	aqm.RespondSuccess(w, o, links...)
}

func (h *Handler) AdjustItemQuantity(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AdjustItemQuantity")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := parseIDParam(w, r, "id", log)
	if !ok {
		return
	}

	itemID, ok := parseIDParam(w, r, "itemID", log)
	if !ok {
		return
	}

	req, ok := decodePayload[QuantityRequest](w, r, log)
	if !ok {
		return
	}

	if validationErrors := ValidateQuantity(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	o, _, err := h.engine.AdjustItemQuantity(ctx, id, itemID, req.Delta)
	if err != nil {
		h.respondEngineError(w, log, err, "Could not adjust quantity")
		return
	}

	links := aqm.RESTfulLinksFor(o)
	aqm.RespondSuccess(w, o, links...)
}

func (h *Handler) MarkItemReady(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MarkItemReady")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, "id", log)
	if !ok {
		return
	}

	itemID, ok := parseIDParam(w, r, "itemID", log)
	if !ok {
		return
	}

	o, err := h.engine.MarkItemReady(r.Context(), id, itemID)
	if err != nil {
		h.respondEngineError(w, log, err, "Could not mark item ready")
		return
	}

	links := aqm.RESTfulLinksFor(o)
	aqm.RespondSuccess(w, o, links...)
}

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Pay")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, "id", log)
	if !ok {
		return
	}

	o, err := h.engine.Pay(r.Context(), id)
	if err != nil {
		h.respondEngineError(w, log, err, "Could not pay order")
		return
	}

	log.Info("order paid", "id", o.ID.String(), "total", o.Total.StringFixed(2))
	links := aqm.RESTfulLinksFor(o)
	aqm.RespondSuccess(w, o, links...)
}

func (h *Handler) respondEngineError(w http.ResponseWriter, log aqm.Logger, err error, msg string) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		aqm.RespondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, ErrOrderItemNotFound):
		aqm.RespondError(w, http.StatusNotFound, "Order item not found")
	case errors.Is(err, catalog.ErrMenuItemNotFound):
		aqm.RespondError(w, http.StatusNotFound, "Menu item not found")
	case errors.Is(err, ErrOrderNotOpen):
		aqm.RespondError(w, http.StatusConflict, "Order is not open")
	case errors.Is(err, ErrTableHasOpenOrder):
		aqm.RespondError(w, http.StatusConflict, "Table already has an open order")
	case errors.Is(err, ErrInvalidDraft):
		aqm.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error(msg, "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, msg)
	}
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string, log aqm.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		log.Debug("missing id parameter", "param", name)
		aqm.RespondError(w, http.StatusBadRequest, "Missing "+name+" parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "param", name, "value", idStr)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid "+name+" parameter")
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
