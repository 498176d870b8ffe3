package cancel_booking

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Cancel(ctx context.Context, id, userID int64, userRole string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
