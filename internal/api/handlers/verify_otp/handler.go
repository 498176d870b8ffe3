package verify_otp

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
	msgInvalidOTP         = "неверный или просроченный код подтверждения"
	msgAlreadyVerified    = "почта уже подтверждена"
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

// Handle POST /api/v1/auth/verify-otp
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/verify-otp - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.VerifyOTP(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("POST /auth/verify-otp - User not found: email=%s", req.Email)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, users.ErrInvalidOTP):
			h.logger.Warn("POST /auth/verify-otp - Invalid code: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgInvalidOTP)

		case errors.Is(err, users.ErrAlreadyVerified):
			h.logger.Warn("POST /auth/verify-otp - Already verified: email=%s", req.Email)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyVerified)

		default:
			h.logger.Error("POST /auth/verify-otp - Failed: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/verify-otp - Email verified: user_id=%d", result.User.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
