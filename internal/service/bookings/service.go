package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/facility"
	"github.com/m04kA/RentEase-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	courtRepo    CourtRepository
	facilityRepo FacilityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	courtRepo CourtRepository,
	facilityRepo FacilityRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		courtRepo:    courtRepo,
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Бронь видят её автор, владелец площадки и администратор
func (s *Service) GetByID(ctx context.Context, id, userID int64, userRole string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkBookingAccess(ctx, booking, userID, userRole); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetFacilityBookings получает бронирования площадки с фильтрацией
// по корту, дате и статусу. Доступно владельцу площадки и администратору
func (s *Service) GetFacilityBookings(ctx context.Context, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetFacilityBookings: facility=%d, user=%d", req.FacilityID, req.UserID)

	if err := s.checkFacilityAccess(ctx, req.FacilityID, req.UserID, req.UserRole); err != nil {
		s.logger.Warn("GetFacilityBookings: access denied for user=%d to facility=%d", req.UserID, req.FacilityID)
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityBookings: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityBookings: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityBookings: fetched %d bookings for facility=%d", len(bookings), req.FacilityID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить бронь могут её автор и администратор, и только пока она подтверждена.
// Отменённая бронь освобождает интервал: его можно забронировать заново
func (s *Service) Cancel(ctx context.Context, id, userID int64, userRole string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID && userRole != string(domain.RoleAdmin) {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status=%s cannot be cancelled", id, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled

	s.logger.Info("Cancel: booking id=%d cancelled", id)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus меняет статус бронирования (только администратор)
// Используется для перевода завершённых игр в completed
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d, new status=%s, user=%d", id, req.Status, req.UserID)

	if req.UserRole != string(domain.RoleAdmin) {
		s.logger.Warn("UpdateStatus: access denied for user=%d", req.UserID)
		return nil, ErrAccessDenied
	}

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	booking, err := s.getBooking(ctx, id, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = status

	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", id, status)
	return models.FromDomainBooking(booking), nil
}

// getBooking общая выборка брони с маппингом ошибок
func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkBookingAccess проверяет, что пользователь может видеть бронь:
// автор брони, владелец площадки корта или администратор
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, userID int64, userRole string) error {
	if booking.UserID == userID || userRole == string(domain.RoleAdmin) {
		return nil
	}

	court, err := s.courtRepo.GetByID(ctx, booking.CourtID)
	if err != nil {
		return fmt.Errorf("%w: checkBookingAccess - get court: %v", ErrInternal, err)
	}

	return s.checkFacilityAccess(ctx, court.FacilityID, userID, userRole)
}

// checkFacilityAccess проверяет, что пользователь владеет площадкой
// или является администратором
func (s *Service) checkFacilityAccess(ctx context.Context, facilityID, userID int64, userRole string) error {
	if userRole == string(domain.RoleAdmin) {
		return nil
	}

	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return ErrFacilityNotFound
		}
		return fmt.Errorf("%w: checkFacilityAccess - get facility: %v", ErrInternal, err)
	}

	if facility.OwnerID != userID {
		return ErrAccessDenied
	}

	return nil
}
