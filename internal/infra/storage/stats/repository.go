package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RentEase-BookingService/pkg/psqlbuilder"
)

// topLimit сколько строк отдаём в топах (корты, клиенты)
const topLimit = 6

// Scope область видимости агрегатов дашборда.
// Админ видит всё (оба поля nil), владелец - свои площадки,
// обычный пользователь - только собственные брони.
type Scope struct {
	OwnerID *int64
	UserID  *int64
}

// Totals сводные показатели по броням в области видимости
type Totals struct {
	BookingsCount  int64
	Revenue        decimal.Decimal
	ActiveBookings int64
	LateReturns    int64
}

// CourtUsage количество броней на корт (для топа кортов)
type CourtUsage struct {
	CourtName    string
	FacilityName string
	Bookings     int64
}

// MonthRevenue выручка за месяц (для графика трендов)
type MonthRevenue struct {
	Month   string
	Revenue decimal.Decimal
}

// CustomerSpend потраченная сумма на клиента (для топа клиентов)
type CustomerSpend struct {
	UserName string
	Bookings int64
	Spent    decimal.Decimal
}

// Repository репозиторий агрегатов для дашборда
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// scopeBookings накладывает область видимости на запрос по таблице bookings b
// Для владельца нужен join до facilities, его делает вызывающая сторона
func scopeBookings(b squirrel.SelectBuilder, scope Scope) squirrel.SelectBuilder {
	if scope.OwnerID != nil {
		b = b.Where(squirrel.Eq{"f.owner_id": *scope.OwnerID})
	}
	if scope.UserID != nil {
		b = b.Where(squirrel.Eq{"b.user_id": *scope.UserID})
	}
	return b
}

// bookingsFrom базовый FROM с join'ами до площадки (нужно для scope владельца)
func bookingsFrom(b squirrel.SelectBuilder) squirrel.SelectBuilder {
	return b.
		From("bookings b").
		Join("courts c ON c.id = b.court_id").
		Join("facilities f ON f.id = c.facility_id")
}

// Totals возвращает сводные показатели в области видимости.
// Выручка считается только по подтверждённым и завершённым броням.
// "Просроченные" - подтверждённые брони с датой в прошлом,
// которые никто не перевёл в completed.
func (r *Repository) Totals(ctx context.Context, scope Scope, today time.Time) (*Totals, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := scopeBookings(bookingsFrom(psqlbuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(b.total_price) FILTER (WHERE b.status IN ('confirmed', 'completed')), 0)",
		"COUNT(*) FILTER (WHERE b.status = 'confirmed' AND b.date >= ?)",
		"COUNT(*) FILTER (WHERE b.status = 'confirmed' AND b.date < ?)",
	)), scope).ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Totals - build select query: %v", ErrBuildQuery, err)
	}

	day := today.Format(domain.DateFormat)
	args = append([]interface{}{day, day}, args...)

	var totals Totals
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&totals.BookingsCount,
		&totals.Revenue,
		&totals.ActiveBookings,
		&totals.LateReturns,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Totals - scan totals: %v", ErrScanRow, err)
	}

	return &totals, nil
}

// TopCourts возвращает корты с наибольшим числом броней
func (r *Repository) TopCourts(ctx context.Context, scope Scope) ([]*CourtUsage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := scopeBookings(bookingsFrom(psqlbuilder.Select(
		"c.name",
		"f.name",
		"COUNT(*) AS bookings",
	)), scope).
		GroupBy("c.id", "c.name", "f.name").
		OrderBy("bookings DESC").
		Limit(topLimit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TopCourts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TopCourts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*CourtUsage, 0, topLimit)

	for rows.Next() {
		var item CourtUsage
		if err := rows.Scan(&item.CourtName, &item.FacilityName, &item.Bookings); err != nil {
			return nil, fmt.Errorf("%w: TopCourts - scan row: %v", ErrScanRow, err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TopCourts - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// RevenueTrends возвращает выручку по месяцам в хронологическом порядке
func (r *Repository) RevenueTrends(ctx context.Context, scope Scope) ([]*MonthRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := scopeBookings(bookingsFrom(psqlbuilder.Select(
		"to_char(b.date, 'Mon') AS month",
		"COALESCE(SUM(b.total_price), 0)",
	)), scope).
		Where(squirrel.Eq{"b.status": []string{"confirmed", "completed"}}).
		GroupBy("to_char(b.date, 'Mon')").
		OrderBy("MIN(b.date)").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RevenueTrends - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RevenueTrends - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*MonthRevenue, 0)

	for rows.Next() {
		var item MonthRevenue
		if err := rows.Scan(&item.Month, &item.Revenue); err != nil {
			return nil, fmt.Errorf("%w: RevenueTrends - scan row: %v", ErrScanRow, err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RevenueTrends - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// TopCustomers возвращает клиентов с наибольшими тратами.
// Имеет смысл только для админа и владельца, не для обычного пользователя.
func (r *Repository) TopCustomers(ctx context.Context, scope Scope) ([]*CustomerSpend, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := scopeBookings(bookingsFrom(psqlbuilder.Select(
		"u.name",
		"COUNT(*) AS bookings",
		"COALESCE(SUM(b.total_price), 0) AS spent",
	)).Join("users u ON u.id = b.user_id"), scope).
		Where(squirrel.Eq{"b.status": []string{"confirmed", "completed"}}).
		GroupBy("u.id", "u.name").
		OrderBy("spent DESC").
		Limit(topLimit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TopCustomers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TopCustomers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*CustomerSpend, 0, topLimit)

	for rows.Next() {
		var item CustomerSpend
		if err := rows.Scan(&item.UserName, &item.Bookings, &item.Spent); err != nil {
			return nil, fmt.Errorf("%w: TopCustomers - scan row: %v", ErrScanRow, err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TopCustomers - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
