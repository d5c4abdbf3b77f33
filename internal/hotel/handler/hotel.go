package handler

import (
	"net/http"

	"hotelinfinity/internal/hotel/service"
	httputil "hotelinfinity/pkg/http"
	"hotelinfinity/pkg/logger"
	"hotelinfinity/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type HotelHandler struct {
	service service.HotelService
	log     *logger.Logger
}

func NewHotelHandler(service service.HotelService, log *logger.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		log:     log,
	}
}

func (h *HotelHandler) ListRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeSuccess(w, "ListRooms", h.service.ListRooms(r.Context()))
}

func (h *HotelHandler) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetRoom(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetRoom", err)
		return
	}
	h.writeSuccess(w, "GetRoom", room)
}

func (h *HotelHandler) ListHalls(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeSuccess(w, "ListHalls", h.service.ListHalls(r.Context()))
}

func (h *HotelHandler) GetHall(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hall, err := h.service.GetHall(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetHall", err)
		return
	}
	h.writeSuccess(w, "GetHall", hall)
}

func (h *HotelHandler) ListReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeSuccess(w, "ListReviews", h.service.ListReviews(r.Context()))
}

func (h *HotelHandler) AddReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var review model.NewReview
	if err := httputil.DecodeJSON(r, &review); err != nil {
		h.writeError(w, "AddReview", err)
		return
	}

	created, err := h.service.AddReview(r.Context(), &review)
	if err != nil {
		h.writeError(w, "AddReview", err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "AddReview", "operation", "WriteCreated", "error", err)
	}
}

func (h *HotelHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.NewBooking
	if err := httputil.DecodeJSON(r, &booking); err != nil {
		h.writeError(w, "CreateBooking", err)
		return
	}

	created, err := h.service.CreateBooking(r.Context(), &booking)
	if err != nil {
		h.writeError(w, "CreateBooking", err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateBooking", "operation", "WriteCreated", "error", err)
	}
}

func (h *HotelHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *HotelHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// RegisterRoutes mounts the public API. booking, when non-nil, wraps the
// booking endpoint (idempotency).
func (h *HotelHandler) RegisterRoutes(router *httprouter.Router, booking func(http.Handler) http.Handler) {
	router.GET("/api/v1/rooms", h.ListRooms)
	router.GET("/api/v1/rooms/:id", h.GetRoom)
	router.GET("/api/v1/halls", h.ListHalls)
	router.GET("/api/v1/halls/:id", h.GetHall)
	router.GET("/api/v1/reviews", h.ListReviews)
	router.POST("/api/v1/reviews", h.AddReview)

	if booking == nil {
		router.POST("/api/v1/bookings", h.CreateBooking)
		return
	}
	router.Handler(http.MethodPost, "/api/v1/bookings", booking(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.CreateBooking(w, r, httprouter.ParamsFromContext(r.Context()))
	})))
}
