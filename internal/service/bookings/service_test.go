package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/booking"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	booking       *domain.Booking
	getErr        error
	userBookings  []*domain.Booking
	statusUpdates map[int64]domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.userBookings, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	return f.userBookings, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[int64]domain.BookingStatus)
	}
	f.statusUpdates[id] = status
	return nil
}

type fakeCourtRepo struct{ court *domain.Court }

func (f *fakeCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	return f.court, nil
}

type fakeFacilityRepo struct{ facility *domain.Facility }

func (f *fakeFacilityRepo) GetByID(_ context.Context, _ int64) (*domain.Facility, error) {
	return f.facility, nil
}

const (
	authorID = int64(11)
	ownerID  = int64(2)
	otherID  = int64(99)
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:         5,
		UserID:     authorID,
		CourtID:    7,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "11:00",
		Status:     domain.StatusConfirmed,
		TotalPrice: decimal.NewFromInt(200),
	}
}

func newService(booking *domain.Booking) (*Service, *fakeBookingRepo) {
	repo := &fakeBookingRepo{booking: booking}
	courts := &fakeCourtRepo{court: &domain.Court{ID: 7, FacilityID: 3}}
	facilities := &fakeFacilityRepo{facility: &domain.Facility{ID: 3, OwnerID: ownerID}}
	return NewService(repo, courts, facilities, stubLogger{}), repo
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		role    string
		wantErr error
	}{
		{"author", authorID, "user", nil},
		{"facility owner", ownerID, "owner", nil},
		{"admin", otherID, "admin", nil},
		{"stranger", otherID, "user", ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(testBooking())

			resp, err := svc.GetByID(context.Background(), 5, tt.userID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), resp.ID)
			assert.Equal(t, "200.00", resp.TotalPrice)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, repo := newService(nil)
	repo.getErr = bookingRepo.ErrBookingNotFound

	_, err := svc.GetByID(context.Background(), 5, authorID, "user")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByAuthor(t *testing.T) {
	svc, repo := newService(testBooking())

	resp, err := svc.Cancel(context.Background(), 5, authorID, "user")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.StatusCancelled, repo.statusUpdates[5])
}

func TestCancel_ByAdmin(t *testing.T) {
	svc, _ := newService(testBooking())

	_, err := svc.Cancel(context.Background(), 5, otherID, "admin")
	assert.NoError(t, err)
}

func TestCancel_AccessDenied(t *testing.T) {
	svc, repo := newService(testBooking())

	// Владелец площадки бронь видит, но отменять её не может
	_, err := svc.Cancel(context.Background(), 5, ownerID, "owner")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.statusUpdates)
}

func TestCancel_NotCancellable(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			booking := testBooking()
			booking.Status = status
			svc, _ := newService(booking)

			_, err := svc.Cancel(context.Background(), 5, authorID, "user")
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}
