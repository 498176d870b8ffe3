package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
)

// Request модели

// ListFacilitiesRequest параметры публичного поиска площадок
type ListFacilitiesRequest struct {
	Query    string  `json:"query,omitempty"`
	Location string  `json:"location,omitempty"`
	Sport    string  `json:"sport,omitempty"`
	PriceMin *string `json:"priceMin,omitempty"`
	PriceMax *string `json:"priceMax,omitempty"`
	Page     int     `json:"page,omitempty"`
	PerPage  int     `json:"perPage,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListFacilitiesRequest) ToDomainFilter() (domain.FacilityFilter, error) {
	filter := domain.FacilityFilter{
		Query:    r.Query,
		Location: r.Location,
		Sport:    r.Sport,
		Page:     r.Page,
		PerPage:  r.PerPage,
	}

	if r.PriceMin != nil {
		min, err := decimal.NewFromString(*r.PriceMin)
		if err != nil {
			return filter, err
		}
		filter.PriceMin = &min
	}
	if r.PriceMax != nil {
		max, err := decimal.NewFromString(*r.PriceMax)
		if err != nil {
			return filter, err
		}
		filter.PriceMax = &max
	}

	return filter, nil
}

// CreateFacilityRequest запрос на создание площадки
type CreateFacilityRequest struct {
	OwnerID     int64   `json:"ownerId"`
	OwnerRole   string  `json:"ownerRole"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description *string `json:"description,omitempty"`
}

// UpdateFacilityRequest запрос на редактирование площадки
type UpdateFacilityRequest struct {
	UserID      int64   `json:"userId"`
	UserRole    string  `json:"userRole"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description *string `json:"description,omitempty"`
}

// ModerateFacilityRequest запрос на модерацию площадки (админ)
type ModerateFacilityRequest struct {
	UserID   int64  `json:"userId"`
	UserRole string `json:"userRole"`
	Status   string `json:"status"` // "approved" или "rejected"
}

// AddCourtRequest запрос на добавление корта на площадку
type AddCourtRequest struct {
	UserID       int64   `json:"userId"`
	UserRole     string  `json:"userRole"`
	Name         string  `json:"name"`
	SportType    string  `json:"sportType"`
	PricePerHour string  `json:"pricePerHour"` // "200.00"
	OpenTime     *string `json:"openTime,omitempty"`
	CloseTime    *string `json:"closeTime,omitempty"`
}

// Response модели

// FacilityResponse ответ с данными площадки
type FacilityResponse struct {
	ID            int64   `json:"id"`
	OwnerID       int64   `json:"ownerId"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Description   *string `json:"description,omitempty"`
	Status        string  `json:"status"`
	StartingPrice *string `json:"startingPrice,omitempty"` // Минимальная цена корта, "150.00"
}

// FacilityListResponse страница публичного поиска
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"perPage"`
}

// CourtResponse ответ с данными корта
type CourtResponse struct {
	ID           int64  `json:"id"`
	FacilityID   int64  `json:"facilityId"`
	Name         string `json:"name"`
	SportType    string `json:"sportType"`
	PricePerHour string `json:"pricePerHour"`
	OpenTime     string `json:"openTime"`
	CloseTime    string `json:"closeTime"`
}

// FacilityDetailResponse площадка вместе с её кортами
type FacilityDetailResponse struct {
	Facility FacilityResponse `json:"facility"`
	Courts   []CourtResponse  `json:"courts"`
}

// FromDomainFacility конвертирует domain модель в response
func FromDomainFacility(f *domain.Facility) FacilityResponse {
	return FacilityResponse{
		ID:          f.ID,
		OwnerID:     f.OwnerID,
		Name:        f.Name,
		Location:    f.Location,
		Description: f.Description,
		Status:      string(f.Status),
	}
}

// FromDomainFacilityWithPrice конвертирует domain модель с ценой в response
func FromDomainFacilityWithPrice(f *domain.FacilityWithPrice) FacilityResponse {
	resp := FromDomainFacility(&f.Facility)
	if f.StartingPrice != nil {
		price := f.StartingPrice.StringFixed(domain.MoneyPrecision)
		resp.StartingPrice = &price
	}
	return resp
}

// FromDomainCourt конвертирует domain модель корта в response
func FromDomainCourt(c *domain.Court) CourtResponse {
	return CourtResponse{
		ID:           c.ID,
		FacilityID:   c.FacilityID,
		Name:         c.Name,
		SportType:    c.SportType,
		PricePerHour: c.PricePerHour.StringFixed(domain.MoneyPrecision),
		OpenTime:     c.OpenTime.String(),
		CloseTime:    c.CloseTime.String(),
	}
}
