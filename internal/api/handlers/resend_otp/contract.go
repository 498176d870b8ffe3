package resend_otp

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/service/users/models"
)

type UsersService interface {
	ResendOTP(ctx context.Context, req *models.ResendOTPRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
