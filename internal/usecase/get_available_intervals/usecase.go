package get_available_intervals

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	courtRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/court"
	facilityRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/facility"
)

// UseCase use case для получения свободных интервалов корта на дату
type UseCase struct {
	bookingRepo  BookingRepository
	courtRepo    CourtRepository
	facilityRepo FacilityRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	courtRepo CourtRepository,
	facilityRepo FacilityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		courtRepo:    courtRepo,
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// Execute возвращает свободные интервалы корта на указанную дату
// Операция только читает, транзакция не нужна: результат носит
// справочный характер, создание брони перепроверяет конфликты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableIntervals: court=%d, date=%s",
		req.CourtID, req.Date.Format(domain.DateFormat))

	if req.CourtID <= 0 {
		return nil, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailableIntervals: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailableIntervals: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	facility, err := uc.facilityRepo.GetByID(ctx, court.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailableIntervals: failed to get facility id=%d: %v", court.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	if !facility.IsBookable() {
		uc.logger.Warn("GetAvailableIntervals: facility id=%d is not approved", facility.ID)
		return nil, ErrFacilityNotBookable
	}

	bookings, err := uc.bookingRepo.GetConfirmedForCourtDate(ctx, req.CourtID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableIntervals: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	intervals := freeIntervals(court.OpenTime, court.CloseTime, bookings)

	uc.logger.Info("GetAvailableIntervals: court=%d has %d free intervals on %s",
		req.CourtID, len(intervals), req.Date.Format(domain.DateFormat))

	return &Response{
		CourtID:   court.ID,
		Date:      req.Date,
		OpenTime:  court.OpenTime,
		CloseTime: court.CloseTime,
		Intervals: intervals,
	}, nil
}
