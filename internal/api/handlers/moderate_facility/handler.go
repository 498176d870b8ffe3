package moderate_facility

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
	msgAccessDenied       = "модерация доступна только администратору"
	msgInvalidStatus      = "недопустимое решение модерации, ожидается approved или rejected"
)

// decisionBody тело запроса модерации
type decisionBody struct {
	Status string `json:"status"` // "approved" или "rejected"
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

// Handle POST /api/v1/facilities/{id}/moderate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /facilities/{id}/moderate - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var body decisionBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /facilities/{id}/moderate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req := &models.ModerateFacilityRequest{
		UserID:   middleware.GetUserID(r.Context()),
		UserRole: middleware.GetRole(r.Context()),
		Status:   body.Status,
	}

	result, err := h.service.Moderate(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("POST /facilities/{id}/moderate - Not found: facility_id=%d", id)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("POST /facilities/{id}/moderate - Access denied: user_id=%d", req.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, facilities.ErrInvalidStatus):
			h.logger.Warn("POST /facilities/{id}/moderate - Invalid decision: %s", body.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("POST /facilities/{id}/moderate - Failed: facility_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facilities/{id}/moderate - Decision applied: facility_id=%d, status=%s", id, body.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleQueue GET /api/v1/facilities/pending
// Очередь площадок, ожидающих модерации
func (h *Handler) HandleQueue(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	userRole := middleware.GetRole(r.Context())

	result, err := h.service.ListPending(r.Context(), userID, userRole)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("GET /facilities/pending - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /facilities/pending - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/pending - %d facilities awaiting moderation", len(result))
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": result,
		"total":      len(result),
	})
}
