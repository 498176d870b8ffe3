package get_available_intervals

import (
	"sort"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

// freeIntervals вычисляет свободные промежутки рабочего дня [open, close),
// вычитая подтверждённые брони. Брони могут приходить в любом порядке,
// результат отсортирован хронологически. Смежные брони (конец одной равен
// началу другой) не оставляют между собой нулевого интервала.
func freeIntervals(open, close types.TimeString, bookings []*domain.Booking) []Interval {
	if !open.IsBefore(close) {
		return []Interval{}
	}

	occupied := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.OccupiesTimeline() {
			occupied = append(occupied, b)
		}
	}

	sort.Slice(occupied, func(i, j int) bool {
		return occupied[i].StartTime.IsBefore(occupied[j].StartTime)
	})

	intervals := make([]Interval, 0, len(occupied)+1)
	cursor := open

	for _, b := range occupied {
		// Брони за пределами рабочего дня просто сужают свободное место до границ
		start := b.StartTime
		if start.IsBefore(cursor) {
			start = cursor
		}
		if start.IsAfter(close) {
			start = close
		}
		if cursor.IsBefore(start) {
			intervals = append(intervals, Interval{Start: cursor, End: start})
		}
		if b.EndTime.IsAfter(cursor) {
			cursor = b.EndTime
		}
		if !cursor.IsBefore(close) {
			return intervals
		}
	}

	if cursor.IsBefore(close) {
		intervals = append(intervals, Interval{Start: cursor, End: close})
	}

	return intervals
}
