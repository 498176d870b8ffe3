package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/booking"
	courtRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/court"
	facilityRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/facility"
	"github.com/m04kA/RentEase-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo        BookingRepository
	courtRepo          CourtRepository
	facilityRepo       FacilityRepository
	txManager          TransactionManager
	timeProvider       TimeProvider
	advanceBookingDays int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	courtRepo CourtRepository,
	facilityRepo FacilityRepository,
	txManager TransactionManager,
	advanceBookingDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		courtRepo:          courtRepo,
		facilityRepo:       facilityRepo,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		advanceBookingDays: advanceBookingDays,
		logger:             logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// два конкурентных запроса на пересекающиеся интервалы не могут
// подтвердиться оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, court=%d, date=%s, interval=%s-%s",
		req.UserID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты: не в прошлом и не дальше горизонта бронирования
	if err := validateDate(req.Date, now, uc.advanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем корт
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	if !court.HasValidRate() {
		uc.logger.Error("CreateBooking: court id=%d has negative hourly rate", court.ID)
		return nil, ErrInvalidCourtRate
	}

	// 5. Проверяем, что площадка корта прошла модерацию
	facility, err := uc.facilityRepo.GetByID(ctx, court.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CreateBooking: facility id=%d not found", court.FacilityID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get facility id=%d: %v", court.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	if !facility.IsBookable() {
		uc.logger.Warn("CreateBooking: facility id=%d is not approved", facility.ID)
		return nil, ErrFacilityNotBookable
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Проверка конфликтов и вставка выполняются в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Берём подтверждённые брони корта на эту дату с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetConfirmedForCourtDate(txCtx, req.CourtID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			// %w сохраняет ошибку репозитория в цепочке: transaction manager
			// повторяет транзакцию, если это был сбой сериализации
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 6.2. Проверяем интервал и считаем цену
		booking, err := acceptReservation(court, req.UserID, req, existing)
		if err != nil {
			uc.logger.Warn("CreateBooking: reservation rejected: %v", err)
			return err
		}

		// 6.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint в БД - последний рубеж против гонки
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken at insert time, court=%d", req.CourtID)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Повторы сериализуемой транзакции исчерпаны: конкурент стабильно
		// успевает раньше, для клиента это тот же конфликт слота
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serializable retries exhausted, court=%d", req.CourtID)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%s",
		result.ID, result.TotalPrice.StringFixed(domain.MoneyPrecision))

	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		CourtID:    result.CourtID,
		Date:       result.Date,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Status:     string(result.Status),
		TotalPrice: result.TotalPrice,
		CreatedAt:  result.CreatedAt,
	}, nil
}
