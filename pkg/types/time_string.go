package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeFormat формат времени HH:MM
const TimeFormat = "15:04"

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time out of range")
)

// TimeString represents a time of day as "HH:MM".
// Stored in Postgres as a time column, compared lexicographically
// (the fixed-width format makes string order match time order).
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывая дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString парсит строку HH:MM в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление HH:MM
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero returns true if the value is unset.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет, что значение соответствует формату HH:MM
func (ts TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}
	return nil
}

// IsBefore returns true if ts is strictly earlier than other.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter returns true if ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// AddMinutes возвращает время через minutes минут
// Возвращает ошибку, если результат выходит за пределы суток
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}

	result := t.Add(time.Duration(minutes) * time.Minute)

	// Переход через полночь считаем ошибкой: бронирования не пересекают сутки
	if result.Day() != t.Day() {
		return "", ErrTimeOutOfRange
	}

	return NewTimeString(result), nil
}

// MinutesUntil возвращает количество минут от ts до other
// Отрицательное значение означает, что other раньше ts
func (ts TimeString) MinutesUntil(other TimeString) (int, error) {
	from, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}
	to, err := time.Parse(TimeFormat, string(other))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(other))
	}
	return int(to.Sub(from).Minutes()), nil
}

// Value implements driver.Valuer.
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner.
// Postgres возвращает time-колонки как строки вида "HH:MM:SS" или time.Time
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeFormat, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	// Пробуем "HH:MM:SS", затем "HH:MM"
	if t, err := time.Parse("15:04:05", s); err == nil {
		*ts = NewTimeString(t)
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
