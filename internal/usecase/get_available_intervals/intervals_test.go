package get_available_intervals

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

func confirmed(start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusConfirmed,
	}
}

func TestFreeIntervals_EmptySchedule(t *testing.T) {
	got := freeIntervals("08:00", "22:00", nil)
	require.Len(t, got, 1)
	assert.Equal(t, Interval{Start: "08:00", End: "22:00"}, got[0])
}

func TestFreeIntervals_SingleBooking(t *testing.T) {
	got := freeIntervals("08:00", "22:00", []*domain.Booking{
		confirmed("10:00", "11:00"),
	})

	assert.Equal(t, []Interval{
		{Start: "08:00", End: "10:00"},
		{Start: "11:00", End: "22:00"},
	}, got)
}

func TestFreeIntervals_UnsortedInput(t *testing.T) {
	// Брони приходят из БД в произвольном порядке
	got := freeIntervals("08:00", "22:00", []*domain.Booking{
		confirmed("18:00", "20:00"),
		confirmed("09:00", "10:00"),
		confirmed("12:00", "14:00"),
	})

	assert.Equal(t, []Interval{
		{Start: "08:00", End: "09:00"},
		{Start: "10:00", End: "12:00"},
		{Start: "14:00", End: "18:00"},
		{Start: "20:00", End: "22:00"},
	}, got)
}

func TestFreeIntervals_AdjacentBookings(t *testing.T) {
	// Стыкующиеся брони не оставляют между собой нулевого интервала
	got := freeIntervals("08:00", "22:00", []*domain.Booking{
		confirmed("10:00", "11:00"),
		confirmed("11:00", "12:00"),
	})

	assert.Equal(t, []Interval{
		{Start: "08:00", End: "10:00"},
		{Start: "12:00", End: "22:00"},
	}, got)
}

func TestFreeIntervals_FullyBooked(t *testing.T) {
	got := freeIntervals("08:00", "12:00", []*domain.Booking{
		confirmed("08:00", "10:00"),
		confirmed("10:00", "12:00"),
	})

	assert.Empty(t, got)
}

func TestFreeIntervals_BookingAtOpening(t *testing.T) {
	got := freeIntervals("08:00", "22:00", []*domain.Booking{
		confirmed("08:00", "09:30"),
	})

	assert.Equal(t, []Interval{
		{Start: "09:30", End: "22:00"},
	}, got)
}

func TestFreeIntervals_IgnoresInactiveBookings(t *testing.T) {
	got := freeIntervals("08:00", "22:00", []*domain.Booking{
		{StartTime: "10:00", EndTime: "12:00", Status: domain.StatusCancelled},
		{StartTime: "14:00", EndTime: "16:00", Status: domain.StatusCompleted},
	})

	require.Len(t, got, 1)
	assert.Equal(t, Interval{Start: "08:00", End: "22:00"}, got[0])
}

func TestFreeIntervals_OverlappingBookings(t *testing.T) {
	// Пересекающиеся брони в данных не должны ломать проход курсором
	got := freeIntervals("08:00", "22:00", []*domain.Booking{
		confirmed("10:00", "13:00"),
		confirmed("11:00", "12:00"),
	})

	assert.Equal(t, []Interval{
		{Start: "08:00", End: "10:00"},
		{Start: "13:00", End: "22:00"},
	}, got)
}

func TestFreeIntervals_BookingOutsideWindow(t *testing.T) {
	// Брони целиком за пределами рабочего дня не съедают свободное время
	got := freeIntervals("08:00", "22:00", []*domain.Booking{
		confirmed("22:30", "23:00"),
	})
	require.Len(t, got, 1)
	assert.Equal(t, Interval{Start: "08:00", End: "22:00"}, got[0])

	got = freeIntervals("08:00", "22:00", []*domain.Booking{
		confirmed("06:00", "07:00"),
	})
	require.Len(t, got, 1)
	assert.Equal(t, Interval{Start: "08:00", End: "22:00"}, got[0])
}

func TestFreeIntervals_BookingCrossingClose(t *testing.T) {
	// Бронь, выходящая за закрытие, обрезается по границе дня
	got := freeIntervals("08:00", "22:00", []*domain.Booking{
		confirmed("10:00", "11:00"),
		confirmed("21:00", "23:00"),
	})

	assert.Equal(t, []Interval{
		{Start: "08:00", End: "10:00"},
		{Start: "11:00", End: "21:00"},
	}, got)
}

func TestFreeIntervals_DegenerateWindow(t *testing.T) {
	assert.Empty(t, freeIntervals("22:00", "08:00", nil))
	assert.Empty(t, freeIntervals("10:00", "10:00", nil))
}

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct{ bookings []*domain.Booking }

func (f *fakeBookingRepo) GetConfirmedForCourtDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeCourtRepo struct{ court *domain.Court }

func (f *fakeCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	return f.court, nil
}

type fakeFacilityRepo struct{ facility *domain.Facility }

func (f *fakeFacilityRepo) GetByID(_ context.Context, _ int64) (*domain.Facility, error) {
	return f.facility, nil
}

func TestExecute(t *testing.T) {
	court := &domain.Court{
		ID:           7,
		FacilityID:   3,
		PricePerHour: decimal.NewFromInt(200),
		OpenTime:     "08:00",
		CloseTime:    "22:00",
	}
	facility := &domain.Facility{ID: 3, Status: domain.FacilityApproved}

	uc := NewUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{confirmed("10:00", "12:00")}},
		&fakeCourtRepo{court: court},
		&fakeFacilityRepo{facility: facility},
		stubLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CourtID: 7,
		Date:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.CourtID)
	assert.Equal(t, types.TimeString("08:00"), resp.OpenTime)
	assert.Equal(t, []Interval{
		{Start: "08:00", End: "10:00"},
		{Start: "12:00", End: "22:00"},
	}, resp.Intervals)
}

func TestExecute_FacilityNotApproved(t *testing.T) {
	court := &domain.Court{ID: 7, FacilityID: 3, OpenTime: "08:00", CloseTime: "22:00"}
	facility := &domain.Facility{ID: 3, Status: domain.FacilityPending}

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeCourtRepo{court: court},
		&fakeFacilityRepo{facility: facility},
		stubLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		CourtID: 7,
		Date:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrFacilityNotBookable)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeCourtRepo{}, &fakeFacilityRepo{}, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{CourtID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CourtID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
