package create_booking

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

// minutesPerHour знаменатель при переводе длительности интервала в часы
var minutesPerHour = decimal.NewFromInt(60)

// findConflicts возвращает брони, пересекающиеся с интервалом [start, end).
// Интервалы полуоткрытые: бронь, заканчивающаяся в start, или начинающаяся
// в end, конфликтом не считается. Отменённые и завершённые брони интервал
// не занимают и в результат не попадают.
func findConflicts(start, end types.TimeString, bookings []*domain.Booking) []*domain.Booking {
	conflicts := make([]*domain.Booking, 0)

	for _, booking := range bookings {
		if !booking.OccupiesTimeline() {
			continue
		}
		if booking.Overlaps(start, end) {
			conflicts = append(conflicts, booking)
		}
	}

	return conflicts
}

// quotePrice считает стоимость интервала по почасовой ставке:
// (минуты / 60) * ставка, с округлением до копеек (half-up).
// Час за 200 стоит 200.00, полтора часа за 200 - 300.00.
func quotePrice(rate decimal.Decimal, start, end types.TimeString) (decimal.Decimal, error) {
	minutes, err := start.MinutesUntil(end)
	if err != nil {
		return decimal.Zero, err
	}
	if minutes <= 0 {
		return decimal.Zero, ErrInvalidInterval
	}

	hours := decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)

	return rate.Mul(hours).Round(domain.MoneyPrecision), nil
}

// acceptReservation проверяет интервал против текущего расписания корта
// и собирает новую бронь с посчитанной ценой. Не трогает хранилище:
// атомарность обеспечивает вызывающая сторона (сериализуемая транзакция).
func acceptReservation(
	court *domain.Court,
	userID int64,
	req *Request,
	existing []*domain.Booking,
) (*domain.Booking, error) {
	if !req.StartTime.IsBefore(req.EndTime) {
		return nil, ErrInvalidInterval
	}

	if !court.IsWithinOperatingHours(req.StartTime, req.EndTime) {
		return nil, ErrOutsideOperatingHours
	}

	if conflicts := findConflicts(req.StartTime, req.EndTime, existing); len(conflicts) > 0 {
		return nil, ErrSlotConflict
	}

	price, err := quotePrice(court.PricePerHour, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		UserID:     userID,
		CourtID:    court.ID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     domain.StatusConfirmed,
		TotalPrice: price,
	}, nil
}
