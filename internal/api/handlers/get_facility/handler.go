package get_facility

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RentEase-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEase-BookingService/internal/api/middleware"
	"github.com/m04kA/RentEase-BookingService/internal/service/facilities"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgFacilityNotFound  = "площадка не найдена"
)

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

// Handle GET /api/v1/facilities/{id}
// Маршрут публичный: для анонимов userID равен нулю, и непрошедшие
// модерацию площадки для них не видны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	userID := middleware.GetUserID(r.Context())
	userRole := middleware.GetRole(r.Context())

	result, err := h.service.GetDetail(r.Context(), id, userID, userRole)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id} - Not found: facility_id=%d", id)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		default:
			h.logger.Error("GET /facilities/{id} - Failed: facility_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id} - Fetched: facility_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
