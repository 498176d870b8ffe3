package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/RentEase-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEase-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/RentEase-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotConflict          = "интервал пересекается с существующим бронированием"
	msgCourtNotFound         = "корт не найден"
	msgFacilityNotBookable   = "площадка не прошла модерацию"
	msgInvalidInterval       = "время начала должно быть раньше времени окончания"
	msgOutsideOperatingHours = "интервал выходит за часы работы корта"
	msgInvalidBookingDate    = "некорректная дата бронирования"
	msgDateTooFar            = "дата бронирования слишком далеко в будущем"
	msgInvalidCourtRate      = "у корта некорректная почасовая ставка"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrFacilityNotBookable):
			h.logger.Warn("POST /bookings - Facility not approved: court_id=%d", req.CourtID)
			handlers.RespondForbidden(w, msgFacilityNotBookable)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			h.logger.Warn("POST /bookings - Invalid interval: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgOutsideOperatingHours)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidCourtRate):
			h.logger.Error("POST /bookings - Invalid court rate: court_id=%d", req.CourtID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidCourtRate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, court_id=%d",
		result.ID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
