package wire

import (
	"library-seating/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSeat(r chi.Router, seatHandler *adaptor.SeatHandler) {
	// GET /api/seats - full grid with occupancy and countdowns
	r.Get("/api/seats", seatHandler.GetSeats)

	// POST /api/seats/reset - free every seat (registered before {id} routes)
	r.Post("/api/seats/reset", seatHandler.ResetAll)

	// GET /api/seats/{id} - search one seat
	r.Get("/api/seats/{id}", seatHandler.SearchSeat)

	// DELETE /api/seats/{id}/booking - manual reset of one seat
	r.Delete("/api/seats/{id}/booking", seatHandler.ResetSeat)

	// POST /api/bookings - book a seat
	r.Post("/api/bookings", seatHandler.BookSeat)
}
