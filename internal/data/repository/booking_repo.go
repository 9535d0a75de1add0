package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"library-seating/internal/data/entity"

	"go.uber.org/zap"
)

// StartTimeLayout is the on-disk format of the start_time column.
const StartTimeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"seat_id", "name", "mobile", "duration", "entry_time", "start_time", "status"}

type BookingRepository interface {
	// EnsureInitialized creates the backing CSV with its header if absent.
	EnsureInitialized(ctx context.Context) error
	// LoadAll returns every persisted record in storage order.
	LoadAll(ctx context.Context) ([]*entity.Booking, error)
	// Upsert replaces any record for the seat with a fresh Occupied one
	// anchored at the current wall-clock time.
	Upsert(ctx context.Context, seatID int, name, mobile string, durationMinutes int, entryTime string) (*entity.Booking, error)
	// SetStatus rewrites the matching record's status. No-op if the seat
	// has no record.
	SetStatus(ctx context.Context, seatID int, status entity.BookingStatus) error
	// ClearAll truncates the store back to header-only.
	ClearAll(ctx context.Context) error
}

// bookingRepository persists bookings to a flat CSV file, at most one row per
// seat. Every mutation is a full read-modify-write of the whole file; at tens
// of records that is cheaper than it sounds and keeps the layout trivially
// inspectable. All operations serialize through a single mutex so the sweeper
// and the HTTP handlers never interleave mid-rewrite.
type bookingRepository struct {
	path string
	mu   sync.Mutex
	log  *zap.Logger
}

func NewBookingRepository(path string, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		path: path,
		log:  log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) EnsureInitialized(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		r.log.Error("Failed to stat booking store", zap.Error(err), zap.String("path", r.path))
		return fmt.Errorf("failed to stat booking store: %w", err)
	}

	if err := r.writeAll(nil); err != nil {
		return err
	}

	r.log.Info("Booking store created", zap.String("path", r.path))
	return nil
}

func (r *bookingRepository) LoadAll(ctx context.Context) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadAll()
}

func (r *bookingRepository) Upsert(ctx context.Context, seatID int, name, mobile string, durationMinutes int, entryTime string) (*entity.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	// The store is a keyed map despite being stored as rows: a new booking
	// discards any prior record for the seat.
	kept := records[:0]
	for _, rec := range records {
		if rec.SeatID != seatID {
			kept = append(kept, rec)
		}
	}

	booking := &entity.Booking{
		SeatID:          seatID,
		Name:            name,
		Mobile:          mobile,
		DurationMinutes: durationMinutes,
		EntryTime:       entryTime,
		StartTime:       time.Now().Truncate(time.Second),
		Status:          entity.BookingStatusOccupied,
	}
	kept = append(kept, booking)

	if err := r.writeAll(kept); err != nil {
		return nil, err
	}

	r.log.Info("Booking stored",
		zap.Int("seat_id", seatID),
		zap.String("name", name),
		zap.Int("duration_minutes", durationMinutes),
	)
	return booking, nil
}

func (r *bookingRepository) SetStatus(ctx context.Context, seatID int, status entity.BookingStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadAll()
	if err != nil {
		return err
	}

	found := false
	for _, rec := range records {
		if rec.SeatID == seatID {
			rec.Status = status
			found = true
		}
	}

	if !found {
		r.log.Debug("Status update for seat without record", zap.Int("seat_id", seatID))
		return nil
	}

	if err := r.writeAll(records); err != nil {
		return err
	}

	r.log.Info("Booking status updated",
		zap.Int("seat_id", seatID),
		zap.String("status", string(status)),
	)
	return nil
}

func (r *bookingRepository) ClearAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.writeAll(nil); err != nil {
		return err
	}

	r.log.Info("Booking store cleared")
	return nil
}

// loadAll reads the whole file. Callers must hold r.mu. A malformed row fails
// the entire load: silently dropping rows could free an occupied seat.
func (r *bookingRepository) loadAll() ([]*entity.Booking, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		r.log.Error("Failed to open booking store", zap.Error(err), zap.String("path", r.path))
		return nil, fmt.Errorf("failed to open booking store: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		r.log.Error("Failed to read booking store", zap.Error(err), zap.String("path", r.path))
		return nil, fmt.Errorf("failed to read booking store: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	var records []*entity.Booking
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			r.log.Error("Malformed booking row", zap.Error(err), zap.Int("row", i+2))
			return nil, fmt.Errorf("malformed booking row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// writeAll rewrites the whole store through a temp file and rename so a crash
// mid-write never leaves a half-written file behind. Callers must hold r.mu.
func (r *bookingRepository) writeAll(records []*entity.Booking) error {
	dir := filepath.Dir(r.path)

	tmp, err := os.CreateTemp(dir, "bookings-*.csv")
	if err != nil {
		r.log.Error("Failed to create temp store", zap.Error(err), zap.String("dir", dir))
		return fmt.Errorf("failed to create temp store: %w", err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(csvHeader); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(formatRow(rec)); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("failed to write booking row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		r.log.Error("Failed to flush booking store", zap.Error(err))
		return fmt.Errorf("failed to flush booking store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp store: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		r.log.Error("Failed to replace booking store", zap.Error(err), zap.String("path", r.path))
		return fmt.Errorf("failed to replace booking store: %w", err)
	}

	return nil
}

func parseRow(row []string) (*entity.Booking, error) {
	if len(row) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}

	seatID, err := strconv.Atoi(row[0])
	if err != nil {
		return nil, fmt.Errorf("invalid seat_id %q: %w", row[0], err)
	}

	duration, err := strconv.Atoi(row[3])
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", row[3], err)
	}

	start, err := time.ParseInLocation(StartTimeLayout, row[5], time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time %q: %w", row[5], err)
	}

	status := entity.BookingStatus(row[6])
	if status != entity.BookingStatusOccupied && status != entity.BookingStatusFree {
		return nil, fmt.Errorf("invalid status %q", row[6])
	}

	return &entity.Booking{
		SeatID:          seatID,
		Name:            row[1],
		Mobile:          row[2],
		DurationMinutes: duration,
		EntryTime:       row[4],
		StartTime:       start,
		Status:          status,
	}, nil
}

func formatRow(rec *entity.Booking) []string {
	return []string{
		strconv.Itoa(rec.SeatID),
		rec.Name,
		rec.Mobile,
		strconv.Itoa(rec.DurationMinutes),
		rec.EntryTime,
		rec.StartTime.Format(StartTimeLayout),
		string(rec.Status),
	}
}
