package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default court operating window
const (
	DefaultOpenTime  = "06:00"
	DefaultCloseTime = "22:00"
)

// Pagination defaults for public facility listing
const (
	DefaultPerPage = 12
	MaxPerPage     = 100
)

// MoneyPrecision число знаков после запятой у денежных сумм
const MoneyPrecision = 2

// InactiveStatuses статусы, не занимающие таймлайн корта
// Используются при фильтрации бронирований для проверки пересечений
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

// ValidBookingStatuses все допустимые статусы бронирования
var ValidBookingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// ValidUserRoles все допустимые роли пользователей
var ValidUserRoles = []UserRole{
	RoleUser,
	RoleOwner,
	RoleAdmin,
}
