package verify_otp

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/service/users/models"
)

type UsersService interface {
	VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.AuthResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
