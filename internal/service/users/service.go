package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	userRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/user"
	"github.com/m04kA/RentEase-BookingService/internal/service/users/models"
	"github.com/m04kA/RentEase-BookingService/pkg/authtoken"
	"github.com/m04kA/RentEase-BookingService/pkg/otp"
)

// minPasswordLength минимальная длина пароля при регистрации
const minPasswordLength = 6

// Service сервис регистрации и аутентификации пользователей
type Service struct {
	userRepo     UserRepository
	mailer       MailerClient
	timeProvider TimeProvider
	jwtSecret    string
	tokenTTL     time.Duration
	otpTTL       time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepo UserRepository,
	mailer MailerClient,
	jwtSecret string,
	tokenTTL time.Duration,
	otpTTL time.Duration,
	logger Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		mailer:       mailer,
		timeProvider: &RealTimeProvider{},
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		otpTTL:       otpTTL,
		logger:       logger,
	}
}

// Register создает аккаунт и отправляет код подтверждения на почту
// Аккаунт остаётся неподтверждённым до вызова VerifyOTP
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	s.logger.Info("Register: new registration for email=%s, role=%s", req.Email, req.Role)

	if err := validateRegisterRequest(req); err != nil {
		s.logger.Warn("Register: validation failed for email=%s: %v", req.Email, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	code, err := otp.Generate()
	if err != nil {
		s.logger.Error("Register: failed to generate OTP: %v", err)
		return nil, fmt.Errorf("%w: Register - generate OTP: %v", ErrInternal, err)
	}

	expiry := s.timeProvider.Now().Add(s.otpTTL)

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         domain.UserRole(req.Role),
		IsVerified:   false,
		OTPCode:      &code,
		OTPExpiry:    &expiry,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already registered", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	if err := s.mailer.SendOTP(created.Email, created.Name, code, int(s.otpTTL.Minutes())); err != nil {
		// Аккаунт уже создан; код можно запросить повторно через ResendOTP
		s.logger.Error("Register: failed to send OTP to %s: %v", created.Email, err)
	}

	s.logger.Info("Register: user id=%d created, verification code sent", created.ID)

	return &models.RegisterResponse{
		User:    models.FromDomainUser(created),
		Message: "verification code sent to your email",
	}, nil
}

// VerifyOTP подтверждает почту кодом и выдает токен доступа
func (s *Service) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.AuthResponse, error) {
	s.logger.Info("VerifyOTP: verification attempt for email=%s", req.Email)

	user, err := s.getByEmail(ctx, req.Email, "VerifyOTP")
	if err != nil {
		return nil, err
	}

	if user.IsVerified {
		s.logger.Warn("VerifyOTP: email=%s is already verified", req.Email)
		return nil, ErrAlreadyVerified
	}

	if !user.HasValidOTP(strings.TrimSpace(req.Code), s.timeProvider.Now()) {
		s.logger.Warn("VerifyOTP: invalid or expired code for email=%s", req.Email)
		return nil, ErrInvalidOTP
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		s.logger.Error("VerifyOTP: failed to mark user id=%d verified: %v", user.ID, err)
		return nil, fmt.Errorf("%w: VerifyOTP - repository error: %v", ErrInternal, err)
	}

	user.IsVerified = true

	token, err := authtoken.Issue(s.jwtSecret, s.tokenTTL, user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("VerifyOTP: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: VerifyOTP - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("VerifyOTP: user id=%d verified", user.ID)

	return &models.AuthResponse{
		Token: token,
		User:  models.FromDomainUser(user),
	}, nil
}

// ResendOTP выдает новый код подтверждения и отправляет его на почту
func (s *Service) ResendOTP(ctx context.Context, req *models.ResendOTPRequest) error {
	s.logger.Info("ResendOTP: new code requested for email=%s", req.Email)

	user, err := s.getByEmail(ctx, req.Email, "ResendOTP")
	if err != nil {
		return err
	}

	if user.IsVerified {
		s.logger.Warn("ResendOTP: email=%s is already verified", req.Email)
		return ErrAlreadyVerified
	}

	code, err := otp.Generate()
	if err != nil {
		s.logger.Error("ResendOTP: failed to generate OTP: %v", err)
		return fmt.Errorf("%w: ResendOTP - generate OTP: %v", ErrInternal, err)
	}

	expiry := s.timeProvider.Now().Add(s.otpTTL)

	if err := s.userRepo.SetOTP(ctx, user.ID, code, expiry); err != nil {
		s.logger.Error("ResendOTP: failed to store OTP for user id=%d: %v", user.ID, err)
		return fmt.Errorf("%w: ResendOTP - repository error: %v", ErrInternal, err)
	}

	if err := s.mailer.SendOTP(user.Email, user.Name, code, int(s.otpTTL.Minutes())); err != nil {
		s.logger.Error("ResendOTP: failed to send OTP to %s: %v", user.Email, err)
		return fmt.Errorf("%w: ResendOTP - send email: %v", ErrInternal, err)
	}

	s.logger.Info("ResendOTP: new code sent to user id=%d", user.ID)

	return nil
}

// Login проверяет пару email/пароль и выдает токен доступа
// Неподтверждённые аккаунты войти не могут
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	s.logger.Info("Login: attempt for email=%s", req.Email)

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: email=%s not found", req.Email)
			// Не раскрываем, существует ли аккаунт
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for email=%s", req.Email)
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		s.logger.Warn("Login: email=%s is not verified", req.Email)
		return nil, ErrNotVerified
	}

	token, err := authtoken.Issue(s.jwtSecret, s.tokenTTL, user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)

	return &models.AuthResponse{
		Token: token,
		User:  models.FromDomainUser(user),
	}, nil
}

// getByEmail общая выборка пользователя по email с маппингом ошибок
func (s *Service) getByEmail(ctx context.Context, email, op string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: email=%s not found", op, email)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return user, nil
}

// validateRegisterRequest валидирует входные данные регистрации
func validateRegisterRequest(req *models.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}

	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	// Администраторов через публичную регистрацию не создать
	role := domain.UserRole(req.Role)
	if role != domain.RoleUser && role != domain.RoleOwner {
		return ErrInvalidRole
	}

	return nil
}

// normalizeEmail приводит email к каноничному виду для поиска и хранения
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
