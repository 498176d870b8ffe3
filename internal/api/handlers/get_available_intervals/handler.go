package get_available_intervals

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/RentEase-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEase-BookingService/internal/domain"
	getIntervals "github.com/m04kA/RentEase-BookingService/internal/usecase/get_available_intervals"
)

const (
	msgInvalidCourtID      = "некорректный ID корта"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateRequired        = "параметр date обязателен"
	msgCourtNotFound       = "корт не найден"
	msgFacilityNotBookable = "площадка не прошла модерацию"
)

type Handler struct {
	useCase GetAvailableIntervalsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableIntervalsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{id}/available-intervals?date=2026-09-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/available-intervals - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/available-intervals - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getIntervals.Request{
		CourtID: courtID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getIntervals.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/available-intervals - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, getIntervals.ErrFacilityNotBookable):
			h.logger.Warn("GET /courts/{id}/available-intervals - Facility not approved: court_id=%d", courtID)
			handlers.RespondForbidden(w, msgFacilityNotBookable)

		case errors.Is(err, getIntervals.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/available-intervals - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /courts/{id}/available-intervals - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{id}/available-intervals - %d intervals: court_id=%d, date=%s",
		len(result.Intervals), courtID, rawDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
