package facilities

import (
	"context"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
)

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error)
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	ListApproved(ctx context.Context, filter domain.FacilityFilter) ([]*domain.FacilityWithPrice, int64, error)
	ListByStatus(ctx context.Context, status domain.FacilityStatus) ([]*domain.Facility, error)
	Update(ctx context.Context, id int64, name, location string, description *string) (*domain.Facility, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FacilityStatus) error
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	Create(ctx context.Context, court *domain.Court) (*domain.Court, error)
	ListByFacility(ctx context.Context, facilityID int64) ([]*domain.Court, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
