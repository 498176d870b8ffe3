package get_facility

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/service/facilities/models"
)

type FacilitiesService interface {
	GetDetail(ctx context.Context, id int64, userID int64, userRole string) (*models.FacilityDetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
