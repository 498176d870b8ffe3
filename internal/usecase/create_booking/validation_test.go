package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRequest() *Request {
	return &Request{
		UserID:    1,
		CourtID:   2,
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, validateRequest(validRequest()))
}

func TestValidateRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero user id", func(r *Request) { r.UserID = 0 }},
		{"negative court id", func(r *Request) { r.CourtID = -1 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"empty end time", func(r *Request) { r.EndTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "10am" }},
		{"malformed end time", func(r *Request) { r.EndTime = "25:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 9, 10, 15, 30, 0, 0, time.UTC)

	// Сегодняшняя дата допустима, даже если рабочий день уже идёт
	assert.NoError(t, validateDate(now, now, 30))

	tomorrow := now.AddDate(0, 0, 1)
	assert.NoError(t, validateDate(tomorrow, now, 30))

	lastAllowed := now.AddDate(0, 0, 30)
	assert.NoError(t, validateDate(lastAllowed, now, 30))
}

func TestValidateDate_Past(t *testing.T) {
	now := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	assert.ErrorIs(t, validateDate(yesterday, now, 30), ErrInvalidDate)
}

func TestValidateDate_BeyondHorizon(t *testing.T) {
	now := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	tooFar := now.AddDate(0, 0, 31)

	assert.ErrorIs(t, validateDate(tooFar, now, 30), ErrDateTooFarInFuture)
}

func TestValidateDate_NoHorizon(t *testing.T) {
	now := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	farFuture := now.AddDate(2, 0, 0)

	// Нулевой горизонт отключает ограничение
	assert.NoError(t, validateDate(farFuture, now, 0))
}
