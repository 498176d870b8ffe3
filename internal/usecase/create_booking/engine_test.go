package create_booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

func confirmedBooking(start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusConfirmed,
	}
}

func TestFindConflicts_Overlapping(t *testing.T) {
	existing := []*domain.Booking{
		confirmedBooking("10:00", "11:00"),
	}

	tests := []struct {
		name      string
		start     types.TimeString
		end       types.TimeString
		conflicts int
	}{
		{"identical interval", "10:00", "11:00", 1},
		{"overlaps start", "09:30", "10:30", 1},
		{"overlaps end", "10:30", "11:30", 1},
		{"contains existing", "09:00", "12:00", 1},
		{"inside existing", "10:15", "10:45", 1},
		{"touches end, no overlap", "11:00", "12:00", 0},
		{"touches start, no overlap", "09:00", "10:00", 0},
		{"fully before", "08:00", "09:00", 0},
		{"fully after", "12:00", "13:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findConflicts(tt.start, tt.end, existing)
			assert.Len(t, got, tt.conflicts)
		})
	}
}

func TestFindConflicts_IgnoresInactiveBookings(t *testing.T) {
	existing := []*domain.Booking{
		{StartTime: "10:00", EndTime: "11:00", Status: domain.StatusCancelled},
		{StartTime: "10:00", EndTime: "11:00", Status: domain.StatusCompleted},
	}

	// Отменённые и завершённые брони слот не занимают
	got := findConflicts("10:00", "11:00", existing)
	assert.Empty(t, got)
}

func TestQuotePrice(t *testing.T) {
	rate := decimal.NewFromInt(200)

	price, err := quotePrice(rate, "09:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, "200.00", price.StringFixed(2))

	price, err = quotePrice(rate, "09:00", "11:30")
	require.NoError(t, err)
	assert.Equal(t, "500.00", price.StringFixed(2))

	price, err = quotePrice(decimal.NewFromFloat(333.33), "09:00", "09:30")
	require.NoError(t, err)
	assert.Equal(t, "166.67", price.StringFixed(2))
}

func TestQuotePrice_InvalidInterval(t *testing.T) {
	rate := decimal.NewFromInt(200)

	_, err := quotePrice(rate, "10:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = quotePrice(rate, "11:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func testCourt() *domain.Court {
	return &domain.Court{
		ID:           7,
		FacilityID:   3,
		Name:         "Корт 1",
		SportType:    "tennis",
		PricePerHour: decimal.NewFromInt(150),
		OpenTime:     "08:00",
		CloseTime:    "22:00",
	}
}

func testRequest(start, end types.TimeString) *Request {
	return &Request{
		UserID:    11,
		CourtID:   7,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   end,
	}
}

func TestAcceptReservation_Success(t *testing.T) {
	req := testRequest("09:00", "10:30")

	booking, err := acceptReservation(testCourt(), req.UserID, req, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(11), booking.UserID)
	assert.Equal(t, int64(7), booking.CourtID)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, "225.00", booking.TotalPrice.StringFixed(2))
}

func TestAcceptReservation_SlotConflict(t *testing.T) {
	existing := []*domain.Booking{confirmedBooking("09:00", "11:00")}
	req := testRequest("10:00", "12:00")

	_, err := acceptReservation(testCourt(), req.UserID, req, existing)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestAcceptReservation_AdjacentBookingsAllowed(t *testing.T) {
	existing := []*domain.Booking{confirmedBooking("09:00", "10:00")}
	req := testRequest("10:00", "11:00")

	booking, err := acceptReservation(testCourt(), req.UserID, req, existing)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), booking.StartTime)
}

func TestAcceptReservation_OutsideOperatingHours(t *testing.T) {
	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
	}{
		{"before opening", "07:00", "09:00"},
		{"after closing", "21:00", "23:00"},
		{"entirely outside", "05:00", "06:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest(tt.start, tt.end)
			_, err := acceptReservation(testCourt(), req.UserID, req, nil)
			assert.ErrorIs(t, err, ErrOutsideOperatingHours)
		})
	}
}

func TestAcceptReservation_BoundaryOfOperatingHours(t *testing.T) {
	// Интервал ровно по границам рабочего дня допустим
	req := testRequest("08:00", "22:00")

	booking, err := acceptReservation(testCourt(), req.UserID, req, nil)
	require.NoError(t, err)
	assert.Equal(t, "2100.00", booking.TotalPrice.StringFixed(2))
}

func TestAcceptReservation_InvalidInterval(t *testing.T) {
	req := testRequest("12:00", "12:00")
	_, err := acceptReservation(testCourt(), req.UserID, req, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	req = testRequest("14:00", "12:00")
	_, err = acceptReservation(testCourt(), req.UserID, req, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
