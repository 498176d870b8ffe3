package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/RentEase-BookingService/pkg/types"
)

// Court represents a bookable court inside a facility
type Court struct {
	ID           int64
	FacilityID   int64
	Name         string
	SportType    string
	PricePerHour decimal.Decimal
	OpenTime     types.TimeString
	CloseTime    types.TimeString
}

// IsWithinOperatingHours returns true if [start, end) fits into the
// court's [open, close) window.
func (c *Court) IsWithinOperatingHours(start, end types.TimeString) bool {
	return !start.IsBefore(c.OpenTime) && !end.IsAfter(c.CloseTime)
}

// HasValidRate returns true if the hourly rate is usable for quoting.
// A negative rate is broken court data, not a user error.
func (c *Court) HasValidRate() bool {
	return !c.PricePerHour.IsNegative()
}
