package models

import (
	"github.com/m04kA/RentEase-BookingService/internal/domain"
)

// Request модели

// RegisterRequest запрос на регистрацию аккаунта
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // "user" или "owner"
}

// VerifyOTPRequest запрос на подтверждение почты кодом
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResendOTPRequest запрос на повторную отправку кода
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response модели

// UserResponse публичные данные аккаунта
type UserResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

// RegisterResponse ответ на регистрацию: код отправлен на почту
type RegisterResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

// AuthResponse ответ с токеном доступа после подтверждения или входа
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FromDomainUser конвертирует domain модель в response
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
	}
}
