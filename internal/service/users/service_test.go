package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	userRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/user"
	"github.com/m04kA/RentEase-BookingService/internal/service/users/models"
	"github.com/m04kA/RentEase-BookingService/pkg/authtoken"
)

const testJWTSecret = "test-secret"

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type fakeUserRepo struct {
	users     map[string]*domain.User
	createErr error
	verified  []int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[user.Email]; ok {
		return nil, userRepo.ErrEmailTaken
	}
	user.ID = int64(len(f.users) + 1)
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) SetOTP(_ context.Context, id int64, code string, expiry time.Time) error {
	for _, u := range f.users {
		if u.ID == id {
			u.OTPCode = &code
			u.OTPExpiry = &expiry
			return nil
		}
	}
	return userRepo.ErrUserNotFound
}

func (f *fakeUserRepo) MarkVerified(_ context.Context, id int64) error {
	f.verified = append(f.verified, id)
	return nil
}

type fakeMailer struct {
	sent    int
	lastTo  string
	lastOTP string
	err     error
}

func (f *fakeMailer) SendOTP(to, _, code string, _ int) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	f.lastTo = to
	f.lastOTP = code
	return nil
}

type serviceFixture struct {
	svc    *Service
	repo   *fakeUserRepo
	mailer *fakeMailer
	now    time.Time
}

func newServiceFixture() *serviceFixture {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	svc := NewService(repo, mailer, testJWTSecret, time.Hour, 5*time.Minute, stubLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}

	return &serviceFixture{svc: svc, repo: repo, mailer: mailer, now: now}
}

func registerRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.COM",
		Password: "secret123",
		Role:     "user",
	}
}

func TestRegister(t *testing.T) {
	f := newServiceFixture()

	resp, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// Email нормализуется, аккаунт создаётся неподтверждённым
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.False(t, resp.User.IsVerified)
	assert.Equal(t, 1, f.mailer.sent)
	assert.Equal(t, "alice@example.com", f.mailer.lastTo)
	assert.Len(t, f.mailer.lastOTP, 6)

	stored := f.repo.users["alice@example.com"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestRegister_EmailTaken(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_MailerFailureDoesNotFailRegistration(t *testing.T) {
	f := newServiceFixture()
	f.mailer.err = assert.AnError

	// Код можно запросить повторно через ResendOTP
	_, err := f.svc.Register(context.Background(), registerRequest())
	assert.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	f := newServiceFixture()

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr error
	}{
		{"empty name", func(r *models.RegisterRequest) { r.Name = "  " }, ErrInvalidInput},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }, ErrInvalidInput},
		{"short password", func(r *models.RegisterRequest) { r.Password = "12345" }, ErrInvalidInput},
		{"admin role forbidden", func(r *models.RegisterRequest) { r.Role = "admin" }, ErrInvalidRole},
		{"unknown role", func(r *models.RegisterRequest) { r.Role = "superuser" }, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest()
			tt.mutate(req)
			_, err := f.svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyOTP(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := f.svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		Email: "alice@example.com",
		Code:  f.mailer.lastOTP,
	})
	require.NoError(t, err)

	assert.True(t, resp.User.IsVerified)
	assert.Contains(t, f.repo.verified, resp.User.ID)

	claims, err := authtoken.Parse(testJWTSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = f.svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		Email: "alice@example.com",
		Code:  "000000",
	})
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// Сдвигаем часы за пределы TTL кода
	f.svc.timeProvider = &fixedTimeProvider{now: f.now.Add(6 * time.Minute)}

	_, err = f.svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		Email: "alice@example.com",
		Code:  f.mailer.lastOTP,
	})
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTP_AlreadyVerified(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = f.svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		Email: "alice@example.com",
		Code:  f.mailer.lastOTP,
	})
	require.NoError(t, err)

	_, err = f.svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		Email: "alice@example.com",
		Code:  f.mailer.lastOTP,
	})
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestResendOTP(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	firstCode := f.mailer.lastOTP

	err = f.svc.ResendOTP(context.Background(), &models.ResendOTPRequest{Email: "alice@example.com"})
	require.NoError(t, err)

	assert.Equal(t, 2, f.mailer.sent)

	// Старый код больше не действует, если сгенерировался новый
	if f.mailer.lastOTP != firstCode {
		_, err = f.svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
			Email: "alice@example.com",
			Code:  firstCode,
		})
		assert.ErrorIs(t, err, ErrInvalidOTP)
	}

	_, err = f.svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		Email: "alice@example.com",
		Code:  f.mailer.lastOTP,
	})
	assert.NoError(t, err)
}

func TestResendOTP_UnknownEmail(t *testing.T) {
	f := newServiceFixture()

	err := f.svc.ResendOTP(context.Background(), &models.ResendOTPRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = f.svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		Email: "alice@example.com",
		Code:  f.mailer.lastOTP,
	})
	require.NoError(t, err)

	resp, err := f.svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ALICE@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_NotVerified(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// Неверный пароль и несуществующий email дают одинаковую ошибку
	_, err = f.svc.Login(context.Background(), &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
