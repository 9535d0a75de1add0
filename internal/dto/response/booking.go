package response

import (
	"time"

	"library-seating/internal/data/entity"
)

type BookingResponse struct {
	SeatID          int                  `json:"seat_id"`
	Name            string               `json:"name"`
	Mobile          string               `json:"mobile"`
	DurationMinutes int                  `json:"duration_minutes"`
	EntryTime       string               `json:"entry_time"`
	StartTime       time.Time            `json:"start_time"`
	EndTime         time.Time            `json:"end_time"`
	Status          entity.BookingStatus `json:"status"`
}

type SeatResponse struct {
	SeatID      int        `json:"seat_id"`
	Occupied    bool       `json:"occupied"`
	Name        string     `json:"name,omitempty"`
	Mobile      string     `json:"mobile,omitempty"`
	EntryTime   string     `json:"entry_time,omitempty"`
	MinutesLeft int        `json:"minutes_left,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}

type SeatGridResponse struct {
	SeatCount int             `json:"seat_count"`
	Seats     []*SeatResponse `json:"seats"`
}

// Helper converters

func BookingToResponse(b *entity.Booking) *BookingResponse {
	return &BookingResponse{
		SeatID:          b.SeatID,
		Name:            b.Name,
		Mobile:          b.Mobile,
		DurationMinutes: b.DurationMinutes,
		EntryTime:       b.EntryTime,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime(),
		Status:          b.Status,
	}
}

func FreeSeatResponse(seatID int) *SeatResponse {
	return &SeatResponse{SeatID: seatID}
}
