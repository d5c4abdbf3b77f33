package handler

import (
	"net/http"

	"hotelinfinity/internal/admin/service"
	httputil "hotelinfinity/pkg/http"
	"hotelinfinity/pkg/logger"
	"hotelinfinity/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AdminHandler struct {
	service service.AdminService
	log     *logger.Logger
}

func NewAdminHandler(service service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds model.Credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	result, err := h.service.Login(r.Context(), &creds)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}
	h.writeSuccess(w, "Login", result)
}

func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reg model.Registration
	if err := httputil.DecodeJSON(r, &reg); err != nil {
		h.writeError(w, "Register", err)
		return
	}

	result, err := h.service.Register(r.Context(), &reg)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}
	h.writeSuccess(w, "Register", result)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.service.Logout(r.Context())
	httputil.WriteNoContent(w)
}

func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeSuccess(w, "Session", h.service.Session(r.Context()))
}

func (h *AdminHandler) UpdateRoomPrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.PriceUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "UpdateRoomPrice", err)
		return
	}

	room, err := h.service.UpdateRoomPrice(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "UpdateRoomPrice", err)
		return
	}
	h.writeSuccess(w, "UpdateRoomPrice", room)
}

func (h *AdminHandler) UpdateHallPrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.PriceUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "UpdateHallPrice", err)
		return
	}

	hall, err := h.service.UpdateHallPrice(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "UpdateHallPrice", err)
		return
	}
	h.writeSuccess(w, "UpdateHallPrice", hall)
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeSuccess(w, "ListBookings", h.service.ListBookings(r.Context()))
}

func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.BookingStatusUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "UpdateBookingStatus", err)
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "UpdateBookingStatus", err)
		return
	}
	h.writeSuccess(w, "UpdateBookingStatus", booking)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeSuccess(w, "Stats", h.service.Stats(r.Context()))
}

func (h *AdminHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *AdminHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// RegisterRoutes mounts the back office API. requireAdmin guards every
// route that reads or changes protected state; authLimit, when non-nil,
// wraps the login and register endpoints.
func (h *AdminHandler) RegisterRoutes(
	router *httprouter.Router,
	requireAdmin func(httprouter.Handle) httprouter.Handle,
	authLimit func(http.Handler) http.Handler,
) {
	h.registerAuth(router, "/api/v1/admin/login", h.Login, authLimit)
	h.registerAuth(router, "/api/v1/admin/register", h.Register, authLimit)
	router.GET("/api/v1/admin/session", h.Session)

	router.POST("/api/v1/admin/logout", requireAdmin(h.Logout))
	router.PATCH("/api/v1/admin/rooms/:id/price", requireAdmin(h.UpdateRoomPrice))
	router.PATCH("/api/v1/admin/halls/:id/price", requireAdmin(h.UpdateHallPrice))
	router.GET("/api/v1/admin/bookings", requireAdmin(h.ListBookings))
	router.PATCH("/api/v1/admin/bookings/:id/status", requireAdmin(h.UpdateBookingStatus))
	router.GET("/api/v1/admin/stats", requireAdmin(h.Stats))
}

func (h *AdminHandler) registerAuth(router *httprouter.Router, path string, handle httprouter.Handle, limit func(http.Handler) http.Handler) {
	if limit == nil {
		router.POST(path, handle)
		return
	}
	router.Handler(http.MethodPost, path, limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle(w, r, httprouter.ParamsFromContext(r.Context()))
	})))
}
