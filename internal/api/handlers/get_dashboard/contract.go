package get_dashboard

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/service/dashboard/models"
)

type DashboardService interface {
	Get(ctx context.Context, userID int64, userRole string) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
