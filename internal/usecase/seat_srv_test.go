package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"library-seating/internal/data/entity"
	"library-seating/internal/data/repository"
	"library-seating/internal/dto/request"
	"library-seating/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Fake repository for resolver tests

type statusCall struct {
	seatID int
	status entity.BookingStatus
}

type fakeBookingRepo struct {
	records      []*entity.Booking
	loadErr      error
	setStatusErr error
	statusCalls  []statusCall
}

func (f *fakeBookingRepo) EnsureInitialized(ctx context.Context) error { return nil }

func (f *fakeBookingRepo) LoadAll(ctx context.Context) ([]*entity.Booking, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.records, nil
}

func (f *fakeBookingRepo) Upsert(ctx context.Context, seatID int, name, mobile string, durationMinutes int, entryTime string) (*entity.Booking, error) {
	booking := &entity.Booking{
		SeatID:          seatID,
		Name:            name,
		Mobile:          mobile,
		DurationMinutes: durationMinutes,
		EntryTime:       entryTime,
		StartTime:       time.Now().Truncate(time.Second),
		Status:          entity.BookingStatusOccupied,
	}
	kept := f.records[:0]
	for _, rec := range f.records {
		if rec.SeatID != seatID {
			kept = append(kept, rec)
		}
	}
	f.records = append(kept, booking)
	return booking, nil
}

func (f *fakeBookingRepo) SetStatus(ctx context.Context, seatID int, status entity.BookingStatus) error {
	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	f.statusCalls = append(f.statusCalls, statusCall{seatID: seatID, status: status})
	for _, rec := range f.records {
		if rec.SeatID == seatID {
			rec.Status = status
		}
	}
	return nil
}

func (f *fakeBookingRepo) ClearAll(ctx context.Context) error {
	f.records = nil
	return nil
}

func testConfig(seatCount int) *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{SeatCount: seatCount},
		Sweeper: utils.SweeperConfig{
			Interval:     time.Second,
			NotifyBuffer: 16,
		},
	}
}

func newFakeService(fake *fakeBookingRepo, seatCount int) SeatService {
	repo := &repository.Repository{Booking: fake}
	return NewSeatService(repo, testConfig(seatCount), zap.NewNop())
}

func occupiedRecord(seatID int, name string, start time.Time, durationMinutes int) *entity.Booking {
	return &entity.Booking{
		SeatID:          seatID,
		Name:            name,
		Mobile:          "9999999999",
		DurationMinutes: durationMinutes,
		EntryTime:       "10:00",
		StartTime:       start,
		Status:          entity.BookingStatusOccupied,
	}
}

func TestActiveBookingsBoundary(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		start  time.Time
		active bool
	}{
		{
			name:   "end time equals now is not active",
			start:  now.Add(-time.Minute),
			active: false,
		},
		{
			name:   "one microsecond before end is active",
			start:  now.Add(-time.Minute).Add(time.Microsecond),
			active: true,
		},
		{
			name:   "expired long ago",
			start:  now.Add(-time.Hour),
			active: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingRepo{records: []*entity.Booking{
				occupiedRecord(3, "Asha", tt.start, 1),
			}}
			service := newFakeService(fake, 50)

			active, err := service.ActiveBookings(context.Background(), now)
			require.NoError(t, err)

			_, ok := active[3]
			assert.Equal(t, tt.active, ok)
			// Resolver reads never mutate the store.
			assert.Empty(t, fake.statusCalls)
		})
	}
}

func TestActiveBookingsSkipsFreeRecords(t *testing.T) {
	now := time.Now()
	free := occupiedRecord(4, "Left", now, 60)
	free.Status = entity.BookingStatusFree

	fake := &fakeBookingRepo{records: []*entity.Booking{
		free,
		occupiedRecord(5, "Here", now, 60),
	}}
	service := newFakeService(fake, 50)

	active, err := service.ActiveBookings(context.Background(), now)
	require.NoError(t, err)

	assert.NotContains(t, active, 4)
	require.Contains(t, active, 5)
	assert.Equal(t, "Here", active[5].Name)
}

func TestActiveBookingsHalfwayThrough(t *testing.T) {
	now := time.Now()
	fake := &fakeBookingRepo{records: []*entity.Booking{
		occupiedRecord(3, "Asha", now.Add(-30*time.Second), 1),
	}}
	service := newFakeService(fake, 50)

	active, err := service.ActiveBookings(context.Background(), now)
	require.NoError(t, err)

	require.Contains(t, active, 3)
	remaining := active[3].EndTime.Sub(now)
	assert.InDelta(t, 30, remaining.Seconds(), 1)
}

func TestExpiredBookings(t *testing.T) {
	now := time.Now()
	freed := occupiedRecord(2, "Gone", now.Add(-2*time.Hour), 1)
	freed.Status = entity.BookingStatusFree

	fake := &fakeBookingRepo{records: []*entity.Booking{
		occupiedRecord(1, "Over", now.Add(-2*time.Minute), 1),
		occupiedRecord(9, "Still", now, 60),
		freed,
	}}
	service := newFakeService(fake, 50)

	expired, err := service.ExpiredBookings(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, expired, 1)
	assert.Equal(t, 1, expired[0].SeatID)
	assert.Equal(t, "Over", expired[0].Name)
}

func TestBookSeatValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *request.BookSeatRequest
		wantErr error
	}{
		{
			name:    "empty name",
			req:     &request.BookSeatRequest{SeatID: 1, Mobile: "9999999999", DurationMinutes: 30, EntryTime: "10:00"},
			wantErr: ErrValidation,
		},
		{
			name:    "empty mobile",
			req:     &request.BookSeatRequest{SeatID: 1, Name: "Asha", DurationMinutes: 30, EntryTime: "10:00"},
			wantErr: ErrValidation,
		},
		{
			name:    "zero duration",
			req:     &request.BookSeatRequest{SeatID: 1, Name: "Asha", Mobile: "9999999999", EntryTime: "10:00"},
			wantErr: ErrValidation,
		},
		{
			name:    "malformed entry time",
			req:     &request.BookSeatRequest{SeatID: 1, Name: "Asha", Mobile: "9999999999", DurationMinutes: 30, EntryTime: "25:99"},
			wantErr: ErrValidation,
		},
		{
			name:    "seat above range",
			req:     &request.BookSeatRequest{SeatID: 51, Name: "Asha", Mobile: "9999999999", DurationMinutes: 30, EntryTime: "10:00"},
			wantErr: ErrSeatOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingRepo{}
			service := newFakeService(fake, 50)

			_, err := service.BookSeat(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			// Rejected input must not mutate the store.
			assert.Empty(t, fake.records)
		})
	}
}

func TestSearchSeatOutOfRange(t *testing.T) {
	service := newFakeService(&fakeBookingRepo{}, 50)

	for _, seatID := range []int{0, -3, 51} {
		_, err := service.SearchSeat(context.Background(), seatID, time.Now())
		assert.ErrorIs(t, err, ErrSeatOutOfRange, "seat %d", seatID)
	}
}

func TestSearchSeatFreeAndOccupied(t *testing.T) {
	now := time.Now()
	fake := &fakeBookingRepo{records: []*entity.Booking{
		occupiedRecord(12, "Asha", now, 30),
	}}
	service := newFakeService(fake, 50)

	occupied, err := service.SearchSeat(context.Background(), 12, now)
	require.NoError(t, err)
	assert.True(t, occupied.Occupied)
	assert.Equal(t, "Asha", occupied.Name)
	assert.Equal(t, 30, occupied.MinutesLeft)

	empty, err := service.SearchSeat(context.Background(), 13, now)
	require.NoError(t, err)
	assert.False(t, empty.Occupied)
	assert.Equal(t, 13, empty.SeatID)
}

func TestSeatGridCoversAllSeats(t *testing.T) {
	now := time.Now()
	fake := &fakeBookingRepo{records: []*entity.Booking{
		occupiedRecord(2, "Asha", now, 30),
	}}
	service := newFakeService(fake, 10)

	grid, err := service.SeatGrid(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 10, grid.SeatCount)
	require.Len(t, grid.Seats, 10)
	assert.False(t, grid.Seats[0].Occupied)
	assert.True(t, grid.Seats[1].Occupied)
	assert.Equal(t, 2, grid.Seats[1].SeatID)
}

func TestResolverPropagatesStoreError(t *testing.T) {
	fake := &fakeBookingRepo{loadErr: errors.New("disk gone")}
	service := newFakeService(fake, 50)

	_, err := service.ActiveBookings(context.Background(), time.Now())
	require.Error(t, err)
}

// Booking through the real CSV store end to end.
func TestBookSeatVisibleImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	repo := &repository.Repository{Booking: repository.NewBookingRepository(path, zap.NewNop())}
	service := NewSeatService(repo, testConfig(50), zap.NewNop())
	ctx := context.Background()

	booking, err := service.BookSeat(ctx, &request.BookSeatRequest{
		SeatID:          3,
		Name:            "Asha",
		Mobile:          "9999999999",
		DurationMinutes: 1,
		EntryTime:       "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, booking.StartTime.Add(time.Minute), booking.EndTime)

	active, err := service.ActiveBookings(ctx, time.Now())
	require.NoError(t, err)
	require.Contains(t, active, 3)
	assert.True(t, active[3].EndTime.Equal(booking.EndTime))

	// Second booking for the same seat stays authoritative and unique.
	_, err = service.BookSeat(ctx, &request.BookSeatRequest{
		SeatID:          3,
		Name:            "Ravi",
		Mobile:          "8888888888",
		DurationMinutes: 5,
		EntryTime:       "10:02",
	})
	require.NoError(t, err)

	records, err := repo.Booking.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ravi", records[0].Name)
}
