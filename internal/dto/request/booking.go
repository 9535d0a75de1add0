package request

type BookSeatRequest struct {
	SeatID          int    `json:"seat_id" validate:"required,min=1"`
	Name            string `json:"name" validate:"required"`
	Mobile          string `json:"mobile" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1"`
	EntryTime       string `json:"entry_time" validate:"required,datetime=15:04"`
}
