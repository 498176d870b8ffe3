package login

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/service/users/models"
)

type UsersService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
