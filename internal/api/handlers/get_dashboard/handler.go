package get_dashboard

import (
	"net/http"

	"github.com/m04kA/RentEase-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEase-BookingService/internal/api/middleware"
)

type Handler struct {
	service DashboardService
	logger  Logger
}

func NewHandler(service DashboardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dashboard
// Содержимое сводки зависит от роли пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	userRole := middleware.GetRole(r.Context())

	result, err := h.service.Get(r.Context(), userID, userRole)
	if err != nil {
		h.logger.Error("GET /dashboard - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dashboard - Summary built: user_id=%d, role=%s", userID, userRole)
	handlers.RespondJSON(w, http.StatusOK, result)
}
