package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"library-seating/internal/dto/request"
	"library-seating/internal/usecase"
	"library-seating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SeatHandler struct {
	service usecase.SeatService
	log     *zap.Logger
}

func NewSeatHandler(service usecase.SeatService, log *zap.Logger) *SeatHandler {
	return &SeatHandler{
		service: service,
		log:     log.With(zap.String("handler", "seat")),
	}
}

// GetSeats handles GET /api/seats
func (h *SeatHandler) GetSeats(w http.ResponseWriter, r *http.Request) {
	grid, err := h.service.SeatGrid(r.Context(), time.Now())
	if err != nil {
		h.log.Error("Failed to build seat grid", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to load seats")
		return
	}

	utils.ResponseSuccess(w, "success", grid)
}

// SearchSeat handles GET /api/seats/{id}
func (h *SeatHandler) SearchSeat(w http.ResponseWriter, r *http.Request) {
	seatID, ok := h.seatIDParam(w, r)
	if !ok {
		return
	}

	seat, err := h.service.SearchSeat(r.Context(), seatID, time.Now())
	if err != nil {
		h.handleServiceError(w, err, "search seat")
		return
	}

	utils.ResponseSuccess(w, "success", seat)
}

// BookSeat handles POST /api/bookings
func (h *SeatHandler) BookSeat(w http.ResponseWriter, r *http.Request) {
	var req request.BookSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// The booking form pre-fills the entry label with the current time.
	if req.EntryTime == "" {
		req.EntryTime = time.Now().Format("15:04")
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.BookSeat(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "book seat")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// ResetSeat handles DELETE /api/seats/{id}/booking
func (h *SeatHandler) ResetSeat(w http.ResponseWriter, r *http.Request) {
	seatID, ok := h.seatIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.ResetSeat(r.Context(), seatID); err != nil {
		h.handleServiceError(w, err, "reset seat")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ResetAll handles POST /api/seats/reset
func (h *SeatHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetAll(r.Context()); err != nil {
		h.handleServiceError(w, err, "reset all seats")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *SeatHandler) seatIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	seatID, err := strconv.Atoi(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Seat id must be a number", nil)
		return 0, false
	}
	return seatID, true
}

func (h *SeatHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	if errors.Is(err, usecase.ErrSeatOutOfRange) || errors.Is(err, usecase.ErrValidation) {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	h.log.Error("Service error", zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}
