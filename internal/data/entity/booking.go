package entity

import "time"

type BookingStatus string

const (
	BookingStatusOccupied BookingStatus = "Occupied"
	BookingStatusFree     BookingStatus = "Free"
)

type Booking struct {
	SeatID          int
	Name            string
	Mobile          string
	DurationMinutes int
	EntryTime       string // "HH:MM" label shown to staff, never used for expiry math
	StartTime       time.Time
	Status          BookingStatus
}

// EndTime is the only expiry boundary for a booking.
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// ActiveAt reports whether the booking still occupies its seat at the given
// instant. A booking whose end time equals now is already over.
func (b *Booking) ActiveAt(now time.Time) bool {
	return b.Status == BookingStatusOccupied && now.Before(b.EndTime())
}
