package resend_otp

import (
	"errors"
	"net/http"

	"github.com/m04kA/RentEase-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEase-BookingService/internal/service/users"
	"github.com/m04kA/RentEase-BookingService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUserNotFound       = "пользователь не найден"
	msgAlreadyVerified    = "почта уже подтверждена"
	msgCodeSent           = "новый код подтверждения отправлен на почту"
)

type Handler struct {
	service UsersService
	logger  Logger
}

func NewHandler(service UsersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/resend-otp
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ResendOTPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/resend-otp - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ResendOTP(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("POST /auth/resend-otp - User not found: email=%s", req.Email)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, users.ErrAlreadyVerified):
			h.logger.Warn("POST /auth/resend-otp - Already verified: email=%s", req.Email)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyVerified)

		default:
			h.logger.Error("POST /auth/resend-otp - Failed: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/resend-otp - Code resent: email=%s", req.Email)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": msgCodeSent})
}
