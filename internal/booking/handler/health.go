package handler

import (
	"net/http"

	"slotdesk/internal/sheets"
	"slotdesk/pkg/httpx"
	"slotdesk/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthHandler struct {
	store sheets.Store
	log   *logger.Logger
}

func NewHealthHandler(store sheets.Store, log *logger.Logger) *HealthHandler {
	return &HealthHandler{store: store, log: log}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

type healthResponse struct {
	OK    bool   `json:"ok"`
	Store string `json:"store"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	_ = httpx.WriteOK(w, healthResponse{OK: true, Store: "unchecked"})
}

// Ready reports readiness including store reachability.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.Warn("Store ping failed", "error", err)
		_ = httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{OK: false, Store: "unreachable"})
		return
	}
	_ = httpx.WriteOK(w, healthResponse{OK: true, Store: "reachable"})
}
