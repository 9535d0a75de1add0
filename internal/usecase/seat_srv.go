package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-seating/internal/data/entity"
	"library-seating/internal/data/repository"
	"library-seating/internal/dto/request"
	"library-seating/internal/dto/response"
	"library-seating/pkg/utils"

	"go.uber.org/zap"
)

// ErrSeatOutOfRange reports a seat id outside 1..N. Out-of-range ids are a
// validation failure, never a lookup miss.
var ErrSeatOutOfRange = errors.New("seat id out of range")

// ErrValidation marks malformed booking input. No store mutation happens
// after it.
var ErrValidation = errors.New("validation failed")

// SeatBooking is the resolver's view of one occupied seat.
type SeatBooking struct {
	SeatID    int
	Name      string
	Mobile    string
	EntryTime string
	EndTime   time.Time
}

type SeatService interface {
	// ActiveBookings derives the currently occupied seats from the store.
	// Pure read: expired rows are skipped, never mutated here.
	ActiveBookings(ctx context.Context, now time.Time) (map[int]SeatBooking, error)
	// ExpiredBookings returns rows still marked Occupied whose end time has
	// passed. Consumed by the expiry sweeper.
	ExpiredBookings(ctx context.Context, now time.Time) ([]SeatBooking, error)

	BookSeat(ctx context.Context, req *request.BookSeatRequest) (*response.BookingResponse, error)
	ResetSeat(ctx context.Context, seatID int) error
	ResetAll(ctx context.Context) error

	SeatGrid(ctx context.Context, now time.Time) (*response.SeatGridResponse, error)
	SearchSeat(ctx context.Context, seatID int, now time.Time) (*response.SeatResponse, error)
}

type seatService struct {
	repo      *repository.Repository
	seatCount int
	log       *zap.Logger
}

func NewSeatService(repo *repository.Repository, config *utils.Config, log *zap.Logger) SeatService {
	return &seatService{
		repo:      repo,
		seatCount: config.App.SeatCount,
		log:       log.With(zap.String("service", "seat")),
	}
}

func (s *seatService) ActiveBookings(ctx context.Context, now time.Time) (map[int]SeatBooking, error) {
	records, err := s.repo.Booking.LoadAll(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	active := make(map[int]SeatBooking)
	for _, rec := range records {
		if rec.ActiveAt(now) {
			active[rec.SeatID] = SeatBooking{
				SeatID:    rec.SeatID,
				Name:      rec.Name,
				Mobile:    rec.Mobile,
				EntryTime: rec.EntryTime,
				EndTime:   rec.EndTime(),
			}
		}
	}

	return active, nil
}

func (s *seatService) ExpiredBookings(ctx context.Context, now time.Time) ([]SeatBooking, error) {
	records, err := s.repo.Booking.LoadAll(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	var expired []SeatBooking
	for _, rec := range records {
		if rec.Status == entity.BookingStatusOccupied && !now.Before(rec.EndTime()) {
			expired = append(expired, SeatBooking{
				SeatID:    rec.SeatID,
				Name:      rec.Name,
				Mobile:    rec.Mobile,
				EntryTime: rec.EntryTime,
				EndTime:   rec.EndTime(),
			})
		}
	}

	return expired, nil
}

func (s *seatService) BookSeat(ctx context.Context, req *request.BookSeatRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book seat validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if err := s.checkSeatRange(req.SeatID); err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.Upsert(ctx, req.SeatID, req.Name, req.Mobile, req.DurationMinutes, req.EntryTime)
	if err != nil {
		return nil, fmt.Errorf("book seat %d: %w", req.SeatID, err)
	}

	return response.BookingToResponse(booking), nil
}

func (s *seatService) ResetSeat(ctx context.Context, seatID int) error {
	if err := s.checkSeatRange(seatID); err != nil {
		return err
	}

	if err := s.repo.Booking.SetStatus(ctx, seatID, entity.BookingStatusFree); err != nil {
		return fmt.Errorf("reset seat %d: %w", seatID, err)
	}

	return nil
}

func (s *seatService) ResetAll(ctx context.Context) error {
	if err := s.repo.Booking.ClearAll(ctx); err != nil {
		return fmt.Errorf("reset all seats: %w", err)
	}

	s.log.Info("All seats reset")
	return nil
}

func (s *seatService) SeatGrid(ctx context.Context, now time.Time) (*response.SeatGridResponse, error) {
	active, err := s.ActiveBookings(ctx, now)
	if err != nil {
		return nil, err
	}

	seats := make([]*response.SeatResponse, 0, s.seatCount)
	for sid := 1; sid <= s.seatCount; sid++ {
		if booking, ok := active[sid]; ok {
			seats = append(seats, occupiedSeatResponse(booking, now))
		} else {
			seats = append(seats, response.FreeSeatResponse(sid))
		}
	}

	return &response.SeatGridResponse{
		SeatCount: s.seatCount,
		Seats:     seats,
	}, nil
}

func (s *seatService) SearchSeat(ctx context.Context, seatID int, now time.Time) (*response.SeatResponse, error) {
	if err := s.checkSeatRange(seatID); err != nil {
		return nil, err
	}

	active, err := s.ActiveBookings(ctx, now)
	if err != nil {
		return nil, err
	}

	booking, ok := active[seatID]
	if !ok {
		return response.FreeSeatResponse(seatID), nil
	}

	return occupiedSeatResponse(booking, now), nil
}

func (s *seatService) checkSeatRange(seatID int) error {
	if seatID < 1 || seatID > s.seatCount {
		s.log.Warn("Seat id out of range", zap.Int("seat_id", seatID), zap.Int("seat_count", s.seatCount))
		return fmt.Errorf("seat %d: %w (1-%d)", seatID, ErrSeatOutOfRange, s.seatCount)
	}
	return nil
}

func occupiedSeatResponse(booking SeatBooking, now time.Time) *response.SeatResponse {
	end := booking.EndTime
	return &response.SeatResponse{
		SeatID:      booking.SeatID,
		Occupied:    true,
		Name:        booking.Name,
		Mobile:      booking.Mobile,
		EntryTime:   booking.EntryTime,
		MinutesLeft: int(end.Sub(now).Minutes()),
		EndTime:     &end,
	}
}
