package create_booking

import (
	"time"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	createBooking "github.com/m04kA/RentEase-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CourtID   int64  `json:"courtId"`
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "10:30"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	CourtID    int64  `json:"courtId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
	TotalPrice string `json:"totalPrice"` // "500.00"
	CreatedAt  string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// ID пользователя приходит из токена, а не из тела запроса
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		CourtID:   r.CourtID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		CourtID:    resp.CourtID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		EndTime:    resp.EndTime.String(),
		Status:     resp.Status,
		TotalPrice: resp.TotalPrice.StringFixed(domain.MoneyPrecision),
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
