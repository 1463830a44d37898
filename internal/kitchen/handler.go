package kitchen

import (
	"errors"
	"net/http"

	"github.com/appetiteclub/pos/internal/order"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	logger aqm.Logger
	config *aqm.Config
	tlm    *telemetry.HTTP
	view   *View
	feed   *Feed
}

func NewHandler(view *View, feed *Feed, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		logger: logger,
		config: config,
		tlm:    telemetry.NewHTTP(),
		view:   view,
		feed:   feed,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/kitchen", func(r chi.Router) {
		r.Get("/tickets", h.ListTickets)
		r.Patch("/tickets/{orderID}/items/{itemID}/ready", h.MarkItemReady)
		if h.feed != nil {
			r.Get("/feed", h.feed.ServeHTTP)
		}
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTickets")
	defer finish()

	log := h.log(r)

	tickets, err := h.view.Board(r.Context())
	if err != nil {
		log.Error("error building kitchen board", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not retrieve tickets")
		return
	}

	aqm.RespondCollection(w, tickets, "ticket")
}

func (h *Handler) MarkItemReady(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MarkItemReady")
	defer finish()

	log := h.log(r)

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		log.Debug("invalid order id", "order_id", chi.URLParam(r, "orderID"))
		aqm.RespondError(w, http.StatusBadRequest, "Invalid orderID parameter")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		log.Debug("invalid item id", "item_id", chi.URLParam(r, "itemID"))
		aqm.RespondError(w, http.StatusBadRequest, "Invalid itemID parameter")
		return
	}

	o, err := h.view.MarkItemReady(r.Context(), orderID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			aqm.RespondError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, order.ErrOrderItemNotFound):
			aqm.RespondError(w, http.StatusNotFound, "Order item not found")
		default:
			log.Error("cannot mark item ready", "error", err)
			aqm.RespondError(w, http.StatusInternalServerError, "Could not mark item ready")
		}
		return
	}

	log.Info("item ready", "order_id", orderID.String(), "item_id", itemID.String())
	links := aqm.RESTfulLinksFor(o)
	aqm.RespondSuccess(w, o, links...)
}
