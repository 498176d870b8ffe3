package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

// BookingStatus represents the status of a court booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a court reservation.
// Date, times, court and total price are immutable after creation:
// corrections are modelled as cancel + rebook.
type Booking struct {
	ID         int64
	UserID     int64
	CourtID    int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     BookingStatus
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

// OccupiesTimeline returns true if the booking blocks its interval.
// Only confirmed bookings participate in conflict checks; a cancelled
// slot frees the interval for rebooking.
func (b *Booking) OccupiesTimeline() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// Overlaps reports whether the booking's [start, end) interval overlaps
// the given one. Touching endpoints are not an overlap.
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}

// CourtBookingsFilter фильтр для выборки бронирований корта или площадки
type CourtBookingsFilter struct {
	CourtID         *int64         // Фильтр по корту (опционально)
	FacilityID      *int64         // Фильтр по площадке (опционально, join через courts)
	Date            *time.Time     // Конкретная дата (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и завершённые
}
