package admin

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/internal/insight"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
)

const reportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OrderLister interface {
	List(ctx context.Context, status string) ([]*order.Order, error)
}

type TableLister interface {
	List(ctx context.Context) ([]*floor.Table, error)
}

type HandlerDeps struct {
	Orders    OrderLister
	Inventory catalog.InventoryRepo
	Tables    TableLister
	Insights  *insight.Service
}

type Handler struct {
	logger    aqm.Logger
	config    *aqm.Config
	tlm       *telemetry.HTTP
	orders    OrderLister
	inventory catalog.InventoryRepo
	tables    TableLister
	insights  *insight.Service
}

type Dashboard struct {
	Stats    Stats          `json:"stats"`
	Insights insight.Panels `json:"insights"`
}

func NewHandler(deps HandlerDeps, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		logger:    logger,
		config:    config,
		tlm:       telemetry.NewHTTP(),
		orders:    deps.Orders,
		inventory: deps.Inventory,
		tables:    deps.Tables,
		insights:  deps.Insights,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Get("/insights", h.Insights)
		r.Post("/insights/refresh", h.RefreshInsights)
		r.Get("/report.xlsx", h.Report)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

// Dashboard returns the current figures and panel texts and kicks off a
// panel refresh without waiting for it.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Dashboard")
	defer finish()

	log := h.log(r)

	stats, err := h.stats(r.Context())
	if err != nil {
		log.Error("cannot compute dashboard stats", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not compute dashboard")
		return
	}

	h.insights.Refresh()

	aqm.Respond(w, http.StatusOK, Dashboard{
		Stats:    stats,
		Insights: h.insights.Panels(),
	}, nil)
}

func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Insights")
	defer finish()

	aqm.Respond(w, http.StatusOK, h.insights.Panels(), nil)
}

func (h *Handler) RefreshInsights(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RefreshInsights")
	defer finish()

	h.log(r).Debug("insight refresh requested")
	h.insights.Refresh()

	aqm.Respond(w, http.StatusAccepted, h.insights.Panels(), nil)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Report")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	orders, err := h.orders.List(ctx, "")
	if err != nil {
		log.Error("error retrieving orders", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not build report")
		return
	}

	inventory, err := h.inventory.List(ctx)
	if err != nil {
		log.Error("error retrieving inventory", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not build report")
		return
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, orders, inventory); err != nil {
		log.Error("cannot write report", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not build report")
		return
	}

	filename := fmt.Sprintf("pos-report-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", reportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) stats(ctx context.Context) (Stats, error) {
	orders, err := h.orders.List(ctx, "")
	if err != nil {
		return Stats{}, fmt.Errorf("list orders: %w", err)
	}

	inventory, err := h.inventory.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list inventory: %w", err)
	}

	tables, err := h.tables.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list tables: %w", err)
	}

	return ComputeStats(orders, inventory, tables), nil
}
