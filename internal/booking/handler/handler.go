package handler

import (
	"encoding/json"
	"net/http"

	"slotdesk/internal/booking/service"
	apperrors "slotdesk/pkg/errors"
	"slotdesk/pkg/httpx"
	"slotdesk/pkg/logger"
	"slotdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// BookingHandler exposes the method-routed surface on "/": GET lists
// availability (or the caller's bookings when ?phone= is given), POST
// books, PATCH cancels, OPTIONS answers CORS preflight.
type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(svc service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: svc,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Get)
	router.POST("/", h.Book)
	router.PATCH("/", h.Cancel)
	router.OPTIONS("/", h.Preflight)
}

type availabilityResponse struct {
	OK    bool                    `json:"ok"`
	Dates map[string][]model.Slot `json:"dates"`
}

type bookingsResponse struct {
	OK       bool           `json:"ok"`
	Bookings []model.Signup `json:"bookings"`
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if phone := r.URL.Query().Get("phone"); phone != "" {
		h.listBookings(w, r, phone)
		return
	}

	listing, err := h.service.GetAvailability(r.Context())
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httpx.WriteOK(w, availabilityResponse{OK: true, Dates: listing.Dates}); err != nil {
		h.log.Error("failed to write response", "handler", "Get", "error", err)
	}
}

func (h *BookingHandler) listBookings(w http.ResponseWriter, r *http.Request, phone string) {
	bookings, err := h.service.GetBookings(r.Context(), phone)
	if err != nil {
		h.writeError(w, "listBookings", err)
		return
	}

	if err := httpx.WriteOK(w, bookingsResponse{OK: true, Bookings: bookings}); err != nil {
		h.log.Error("failed to write response", "handler", "listBookings", "error", err)
	}
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Book", apperrors.InvalidInput("Invalid request body"))
		return
	}

	confirmation, err := h.service.Book(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httpx.WriteMessage(w, confirmation.Message()); err != nil {
		h.log.Error("failed to write response", "handler", "Book", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Cancel", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Cancel(r.Context(), &req); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httpx.WriteMessage(w, "Booking cancelled"); err != nil {
		h.log.Error("failed to write response", "handler", "Cancel", "error", err)
	}
}

func (h *BookingHandler) Preflight(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.Code == apperrors.CodeInternal {
		h.log.Error("request failed", "handler", handlerName, "error", appErr)
	}
	if writeErr := httpx.WriteError(w, appErr); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}
