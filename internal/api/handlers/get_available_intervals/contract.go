package get_available_intervals

import (
	"context"

	getIntervals "github.com/m04kA/RentEase-BookingService/internal/usecase/get_available_intervals"
)

type GetAvailableIntervalsUseCase interface {
	Execute(ctx context.Context, req *getIntervals.Request) (*getIntervals.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
