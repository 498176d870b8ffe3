package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30am")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.NoError(t, TimeString("23:59").Validate())
	assert.ErrorIs(t, TimeString("24:00").Validate(), ErrInvalidTimeFormat)
	assert.ErrorIs(t, TimeString("").Validate(), ErrInvalidTimeFormat)
	assert.ErrorIs(t, TimeString("0930").Validate(), ErrInvalidTimeFormat)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// Фиксированная ширина формата: строковый порядок совпадает с временным
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), ts)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_MinutesUntil(t *testing.T) {
	minutes, err := TimeString("09:00").MinutesUntil("11:30")
	require.NoError(t, err)
	assert.Equal(t, 150, minutes)

	minutes, err = TimeString("11:30").MinutesUntil("09:00")
	require.NoError(t, err)
	assert.Equal(t, -150, minutes)

	_, err = TimeString("bad").MinutesUntil("09:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 15, 18, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("garbage").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
