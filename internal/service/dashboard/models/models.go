package models

// DashboardResponse сводка показателей для личного кабинета
// Набор блоков зависит от роли: обычный пользователь видит только
// свои брони и траты, владелец и админ - выручку и топ клиентов
type DashboardResponse struct {
	Totals       TotalsResponse        `json:"totals"`
	TopCourts    []CourtUsageResponse  `json:"topCourts"`
	RevenueTrend []MonthPointResponse  `json:"revenueTrend"`
	TopCustomers []TopCustomerResponse `json:"topCustomers,omitempty"`
}

// TotalsResponse сводные счётчики
type TotalsResponse struct {
	Bookings       int64  `json:"bookings"`
	Revenue        string `json:"revenue"` // "12500.00"
	ActiveBookings int64  `json:"activeBookings"`
	LateReturns    int64  `json:"lateReturns"`
}

// CourtUsageResponse строка топа кортов
type CourtUsageResponse struct {
	Court    string `json:"court"`
	Facility string `json:"facility"`
	Bookings int64  `json:"bookings"`
}

// MonthPointResponse точка графика выручки
type MonthPointResponse struct {
	Month   string `json:"month"` // "Jan"
	Revenue string `json:"revenue"`
}

// TopCustomerResponse строка топа клиентов
type TopCustomerResponse struct {
	Name     string `json:"name"`
	Bookings int64  `json:"bookings"`
	Spent    string `json:"spent"`
}
