package get_available_intervals

import (
	"time"

	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

// Request модель запроса на получение свободных интервалов
type Request struct {
	CourtID int64     // ID корта
	Date    time.Time // Дата (без времени)
}

// Response модель ответа со списком свободных интервалов
type Response struct {
	CourtID   int64      // ID корта
	Date      time.Time  // Дата, на которую запрашивались интервалы
	OpenTime  types.TimeString // Начало рабочего дня корта
	CloseTime types.TimeString // Конец рабочего дня корта
	Intervals []Interval // Свободные интервалы в хронологическом порядке
}

// Interval свободный полуоткрытый интервал [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}
