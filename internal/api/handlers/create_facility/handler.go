package create_facility

import (
	"errors"
	"net/http"

	"github.com/m04kA/RentEase-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEase-BookingService/internal/api/middleware"
	"github.com/m04kA/RentEase-BookingService/internal/service/facilities"
	"github.com/m04kA/RentEase-BookingService/internal/service/facilities/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAccessDenied       = "создавать площадки могут только владельцы"
	msgInvalidInput       = "название и адрес площадки обязательны"
)

// facilityBody тело запроса на создание площадки
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

// Handle POST /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body facilityBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /facilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req := &models.CreateFacilityRequest{
		OwnerID:     middleware.GetUserID(r.Context()),
		OwnerRole:   middleware.GetRole(r.Context()),
		Name:        body.Name,
		Location:    body.Location,
		Description: body.Description,
	}

	result, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("POST /facilities - Access denied: user_id=%d, role=%s", req.OwnerID, req.OwnerRole)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("POST /facilities - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /facilities - Failed: user_id=%d, error=%v", req.OwnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities - Created: facility_id=%d, owner_id=%d", result.ID, req.OwnerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
