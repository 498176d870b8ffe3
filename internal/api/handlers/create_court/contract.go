package create_court

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/service/facilities/models"
)

type FacilitiesService interface {
	AddCourt(ctx context.Context, facilityID int64, req *models.AddCourtRequest) (*models.CourtResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
