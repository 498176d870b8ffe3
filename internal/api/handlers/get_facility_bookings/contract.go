package get_facility_bookings

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetFacilityBookings(ctx context.Context, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
