package dashboard

import (
	"context"
	"time"

	"github.com/m04kA/RentEase-BookingService/internal/infra/storage/stats"
)

// StatsRepository интерфейс репозитория агрегатов
type StatsRepository interface {
	Totals(ctx context.Context, scope stats.Scope, today time.Time) (*stats.Totals, error)
	TopCourts(ctx context.Context, scope stats.Scope) ([]*stats.CourtUsage, error)
	RevenueTrends(ctx context.Context, scope stats.Scope) ([]*stats.MonthRevenue, error)
	TopCustomers(ctx context.Context, scope stats.Scope) ([]*stats.CustomerSpend, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
