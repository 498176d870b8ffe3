package models

import (
	"errors"
	"time"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetFacilityBookingsRequest запрос на получение бронирований площадки
// Доступно владельцу площадки и администратору
type GetFacilityBookingsRequest struct {
	UserID          int64      `json:"userId"`
	UserRole        string     `json:"userRole"`
	FacilityID      int64      `json:"facilityId"`
	CourtID         *int64     `json:"courtId,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса бронирования (админ)
type UpdateStatusRequest struct {
	UserID   int64  `json:"userId"`
	UserRole string `json:"userRole"`
	Status   string `json:"status"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetFacilityBookingsRequest) ToDomainFilter() (domain.CourtBookingsFilter, error) {
	filter := domain.CourtBookingsFilter{
		FacilityID:      &r.FacilityID,
		CourtID:         r.CourtID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	CourtID    int64  `json:"courtId"`
	Date       string `json:"date"`      // "2026-09-15"
	StartTime  string `json:"startTime"` // "09:00"
	EndTime    string `json:"endTime"`   // "10:30"
	Status     string `json:"status"`
	TotalPrice string `json:"totalPrice"` // "500.00"
	CreatedAt  string `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		CourtID:    b.CourtID,
		Date:       b.Date.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice.StringFixed(domain.MoneyPrecision),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, *FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: items,
		Total:    len(items),
	}
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	for _, valid := range domain.ValidBookingStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}
