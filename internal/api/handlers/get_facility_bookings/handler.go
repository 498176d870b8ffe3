package get_facility_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/RentEase-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEase-BookingService/internal/api/middleware"
	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/internal/service/bookings"
	"github.com/m04kA/RentEase-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RentEase-BookingService/pkg/ptr"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgInvalidCourtID    = "некорректный ID корта"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
	msgFacilityNotFound  = "площадка не найдена"
	msgAccessDenied      = "нет доступа к бронированиям этой площадки"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{id}/bookings?courtId=&date=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/bookings - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	req := &models.GetFacilityBookingsRequest{
		UserID:     middleware.GetUserID(r.Context()),
		UserRole:   middleware.GetRole(r.Context()),
		FacilityID: facilityID,
	}

	query := r.URL.Query()

	if raw := query.Get("courtId"); raw != "" {
		courtID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidCourtID)
			return
		}
		req.CourtID = &courtID
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetFacilityBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/bookings - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /facilities/{id}/bookings - Access denied: facility_id=%d, user_id=%d",
				facilityID, req.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/bookings - Invalid filter: facility_id=%d", facilityID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /facilities/{id}/bookings - Failed: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/bookings - Fetched %d bookings: facility_id=%d", result.Total, facilityID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
