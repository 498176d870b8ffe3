package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	CourtID   int64            // ID корта
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "09:00")
	EndTime   types.TimeString // Время окончания (например, "10:30")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64            // ID созданного бронирования
	UserID     int64            // ID пользователя
	CourtID    int64            // ID корта
	Date       time.Time        // Дата бронирования
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время окончания
	Status     string           // Статус бронирования
	TotalPrice decimal.Decimal  // Итоговая стоимость
	CreatedAt  time.Time        // Время создания
}
