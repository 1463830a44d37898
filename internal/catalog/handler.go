package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger        aqm.Logger
	config        *aqm.Config
	tlm           *telemetry.HTTP
	menuRepo      MenuRepo
	inventoryRepo InventoryRepo
}

type HandlerDeps struct {
	MenuRepo      MenuRepo
	InventoryRepo InventoryRepo
}

func NewHandler(deps HandlerDeps, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		logger:        logger,
		config:        config,
		tlm:           telemetry.NewHTTP(),
		menuRepo:      deps.MenuRepo,
		inventoryRepo: deps.InventoryRepo,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/menu-items", func(r chi.Router) {
		r.Get("/", h.ListMenuItems)
		r.Post("/", h.CreateMenuItem)
		r.Get("/{id}", h.GetMenuItem)
		r.Put("/{id}", h.UpdateMenuItem)
		r.Delete("/{id}", h.DeleteMenuItem)
	})

	r.Get("/menu-categories", h.ListCategories)

	r.Route("/inventory-items", func(r chi.Router) {
		r.Get("/", h.ListInventoryItems)
		r.Post("/", h.CreateInventoryItem)
		r.Get("/{id}", h.GetInventoryItem)
		r.Patch("/{id}/stock", h.AdjustStock)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

// Menu

func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMenuItems")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	var items []*MenuItem
	var err error

	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		items, err = h.menuRepo.ListByCategory(ctx, category)
	} else {
		items, err = h.menuRepo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving menu items", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not retrieve menu items")
		return
	}

	aqm.RespondCollection(w, items, "menu-item")
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCategories")
	defer finish()

	log := h.log(r)

	items, err := h.menuRepo.List(r.Context())
	if err != nil {
		log.Error("error retrieving menu items", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not retrieve categories")
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{
		"categories": Categories(items),
	}, nil)
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateMenuItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	req, ok := decodePayload[MenuItemRequest](w, r, log)
	if !ok {
		return
	}

	if validationErrors := ValidateMenuItem(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	item := NewMenuItem()
	item.Apply(req)
	item.BeforeCreate()

	if err := h.menuRepo.Create(ctx, item); err != nil {
		log.Error("cannot create menu item", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not create menu item")
		return
	}

	links := aqm.RESTfulLinksFor(item)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, item, links...)
}

func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMenuItem")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.menuRepo.Get(r.Context(), id)
	if err != nil {
		log.Debug("menu item not found", "error", err, "id", id.String())
		aqm.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	links := aqm.RESTfulLinksFor(item)
	aqm.RespondSuccess(w, item, links...)
}

// UpdateMenuItem replaces every editable field of the item.
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateMenuItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	req, ok := decodePayload[MenuItemRequest](w, r, log)
	if !ok {
		return
	}

	if validationErrors := ValidateMenuItem(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	item, err := h.menuRepo.Get(ctx, id)
	if err != nil {
		log.Debug("menu item not found", "error", err, "id", id.String())
		aqm.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	item.Apply(req)
	item.BeforeUpdate()

	if err := h.menuRepo.Save(ctx, item); err != nil {
		if errors.Is(err, ErrMenuItemNotFound) {
			aqm.RespondError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		log.Error("cannot update menu item", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not update menu item")
		return
	}

	links := aqm.RESTfulLinksFor(item)
	aqm.RespondSuccess(w, item, links...)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteMenuItem")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.menuRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrMenuItemNotFound) {
			aqm.RespondError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		log.Error("cannot delete menu item", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not delete menu item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Inventory

func (h *Handler) ListInventoryItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListInventoryItems")
	defer finish()

	log := h.log(r)

	items, err := h.inventoryRepo.List(r.Context())
	if err != nil {
		log.Error("error retrieving inventory", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not retrieve inventory")
		return
	}

	if r.URL.Query().Get("low") == "true" {
		items = LowStock(items)
	}

	aqm.RespondCollection(w, items, "inventory-item")
}

func (h *Handler) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateInventoryItem")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	req, ok := decodePayload[InventoryItemCreateRequest](w, r, log)
	if !ok {
		return
	}

	if validationErrors := ValidateInventoryItem(ctx, req); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		respondValidationErrors(w, validationErrors)
		return
	}

	item := NewInventoryItem()
	item.Name = req.Name
	item.CurrentStock = req.CurrentStock
	item.Unit = req.Unit
	item.MinThreshold = req.MinThreshold
	item.BeforeCreate()

	if err := h.inventoryRepo.Create(ctx, item); err != nil {
		log.Error("cannot create inventory item", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not create inventory item")
		return
	}

	links := aqm.RESTfulLinksFor(item)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, item, links...)
}

func (h *Handler) GetInventoryItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetInventoryItem")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.inventoryRepo.Get(r.Context(), id)
	if err != nil {
		log.Debug("inventory item not found", "error", err, "id", id.String())
		aqm.RespondError(w, http.StatusNotFound, "Inventory item not found")
		return
	}

	links := aqm.RESTfulLinksFor(item)
	aqm.RespondSuccess(w, item, links...)
}

func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AdjustStock")
	defer finish()

	log := h.log(r)

	id, ok := parseIDParam(w, r, log)
	if !ok {
		return
	}

	req, ok := decodePayload[StockAdjustRequest](w, r, log)
	if !ok {
		return
	}

	item, err := h.inventoryRepo.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		if errors.Is(err, ErrInventoryItemNotFound) {
			aqm.RespondError(w, http.StatusNotFound, "Inventory item not found")
			return
		}
		log.Error("cannot adjust stock", "error", err, "id", id.String())
		aqm.RespondError(w, http.StatusInternalServerError, "Could not adjust stock")
		return
	}

	log.Debug("stock adjusted", "id", id.String(), "delta", req.Delta.String(), "current_stock", item.CurrentStock.String())
	links := aqm.RESTfulLinksFor(item)
	aqm.RespondSuccess(w, item, links...)
}

// Helpers

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
