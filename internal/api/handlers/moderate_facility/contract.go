package moderate_facility

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/service/facilities/models"
)

type FacilitiesService interface {
	Moderate(ctx context.Context, id int64, req *models.ModerateFacilityRequest) (*models.FacilityResponse, error)
	ListPending(ctx context.Context, userID int64, userRole string) ([]models.FacilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
