package get_available_intervals

import (
	"github.com/m04kA/RentEase-BookingService/internal/domain"
	getIntervals "github.com/m04kA/RentEase-BookingService/internal/usecase/get_available_intervals"
)

// IntervalResponse HTTP модель свободного интервала
type IntervalResponse struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "12:30"
}

// AvailableIntervalsResponse HTTP response model
type AvailableIntervalsResponse struct {
	CourtID   int64              `json:"courtId"`
	Date      string             `json:"date"`
	OpenTime  string             `json:"openTime"`
	CloseTime string             `json:"closeTime"`
	Intervals []IntervalResponse `json:"intervals"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getIntervals.Response) *AvailableIntervalsResponse {
	intervals := make([]IntervalResponse, 0, len(resp.Intervals))
	for _, interval := range resp.Intervals {
		intervals = append(intervals, IntervalResponse{
			Start: interval.Start.String(),
			End:   interval.End.String(),
		})
	}

	return &AvailableIntervalsResponse{
		CourtID:   resp.CourtID,
		Date:      resp.Date.Format(domain.DateFormat),
		OpenTime:  resp.OpenTime.String(),
		CloseTime: resp.CloseTime.String(),
		Intervals: intervals,
	}
}
