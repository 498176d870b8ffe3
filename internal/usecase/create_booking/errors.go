package create_booking

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrFacilityNotBookable возвращается, когда площадка корта не прошла модерацию
	ErrFacilityNotBookable = errors.New("create_booking: facility is not approved for booking")

	// ErrInvalidInterval возвращается, когда интервал вырожден (start >= end)
	ErrInvalidInterval = errors.New("create_booking: start time must be before end time")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за часы работы корта
	ErrOutsideOperatingHours = errors.New("create_booking: interval is outside court operating hours")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotConflict возвращается, когда интервал пересекается с подтверждённой бронью
	ErrSlotConflict = errors.New("create_booking: time slot conflicts with an existing booking")

	// ErrInvalidCourtRate возвращается, когда у корта отрицательная почасовая ставка
	ErrInvalidCourtRate = errors.New("create_booking: court has invalid hourly rate")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
