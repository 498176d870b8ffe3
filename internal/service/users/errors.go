package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotVerified возвращается при попытке входа без подтверждения почты
	ErrNotVerified = errors.New("email is not verified")

	// ErrAlreadyVerified возвращается при повторном подтверждении почты
	ErrAlreadyVerified = errors.New("email is already verified")

	// ErrInvalidOTP возвращается при неверном или просроченном коде подтверждения
	ErrInvalidOTP = errors.New("invalid or expired verification code")

	// ErrInvalidRole возвращается при попытке зарегистрироваться с недопустимой ролью
	ErrInvalidRole = errors.New("invalid account role")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
