package create_court

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RentEase-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEase-BookingService/internal/api/middleware"
	"github.com/m04kA/RentEase-BookingService/internal/service/facilities"
	"github.com/m04kA/RentEase-BookingService/internal/service/facilities/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFacilityID  = "некорректный ID площадки"
	msgFacilityNotFound   = "площадка не найдена"
	msgAccessDenied       = "добавлять корты может только владелец площадки"
	msgInvalidCourtData   = "некорректные данные корта"
)

// courtBody тело запроса на добавление корта
type courtBody struct {
	Name         string  `json:"name"`
	SportType    string  `json:"sportType"`
	PricePerHour string  `json:"pricePerHour"` // "200.00"
	OpenTime     *string `json:"openTime,omitempty"`
	CloseTime    *string `json:"closeTime,omitempty"`
}

type Handler struct {
	service FacilitiesService
	logger  Logger
}

func NewHandler(service FacilitiesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/facilities/{id}/courts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/courts - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var body courtBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /facilities/{id}/courts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req := &models.AddCourtRequest{
		UserID:       middleware.GetUserID(r.Context()),
		UserRole:     middleware.GetRole(r.Context()),
		Name:         body.Name,
		SportType:    body.SportType,
		PricePerHour: body.PricePerHour,
		OpenTime:     body.OpenTime,
		CloseTime:    body.CloseTime,
	}

	result, err := h.service.AddCourt(r.Context(), facilityID, req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/courts - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("POST /facilities/{id}/courts - Access denied: facility_id=%d, user_id=%d",
				facilityID, req.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, facilities.ErrInvalidCourtData):
			h.logger.Warn("POST /facilities/{id}/courts - Invalid court data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCourtData)

		default:
			h.logger.Error("POST /facilities/{id}/courts - Failed: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/courts - Court created: court_id=%d, facility_id=%d",
		result.ID, facilityID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
