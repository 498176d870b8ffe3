package update_facility

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
	msgAccessDenied       = "редактировать площадку может только её владелец"
	msgInvalidInput       = "название и адрес площадки обязательны"
)

// facilityBody тело запроса на редактирование площадки
type facilityBody struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description *string `json:"description,omitempty"`
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

// Handle PUT /api/v1/facilities/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /facilities/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var body facilityBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /facilities/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req := &models.UpdateFacilityRequest{
		UserID:      middleware.GetUserID(r.Context()),
		UserRole:    middleware.GetRole(r.Context()),
		Name:        body.Name,
		Location:    body.Location,
		Description: body.Description,
	}

	result, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("PUT /facilities/{id} - Not found: facility_id=%d", id)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("PUT /facilities/{id} - Access denied: facility_id=%d, user_id=%d", id, req.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("PUT /facilities/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /facilities/{id} - Failed: facility_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /facilities/{id} - Updated: facility_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
