package users

import (
	"context"
	"time"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetOTP(ctx context.Context, id int64, code string, expiry time.Time) error
	MarkVerified(ctx context.Context, id int64) error
}

// MailerClient интерфейс почтового клиента для отправки кодов подтверждения
type MailerClient interface {
	SendOTP(to, name, code string, ttlMinutes int) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
