package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FacilityStatus represents the moderation status of a facility
type FacilityStatus string

const (
	FacilityPending  FacilityStatus = "pending"
	FacilityApproved FacilityStatus = "approved"
	FacilityRejected FacilityStatus = "rejected"
)

// Facility represents a sports facility owned by a user.
// New facilities start as pending and must be approved by an
// administrator before their courts accept bookings.
type Facility struct {
	ID          int64
	OwnerID     int64
	Name        string
	Location    string
	Description *string
	Status      FacilityStatus
	CreatedAt   time.Time
}

// IsBookable returns true if the facility's courts may accept bookings
func (f *Facility) IsBookable() bool {
	return f.Status == FacilityApproved
}

// FacilityFilter фильтр публичного поиска площадок
type FacilityFilter struct {
	Query    string           // Поиск по названию и описанию (ILIKE)
	Location string           // Поиск по адресу (ILIKE)
	Sport    string           // Фильтр по виду спорта кортов (ILIKE)
	PriceMin *decimal.Decimal // Нижняя граница минимальной цены корта
	PriceMax *decimal.Decimal // Верхняя граница минимальной цены корта
	Page     int
	PerPage  int
}

// FacilityWithPrice площадка вместе с минимальной ценой её кортов
// Цена nil, если у площадки нет кортов
type FacilityWithPrice struct {
	Facility
	StartingPrice *decimal.Decimal
}
