package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RentEase-BookingService/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки нарушения exclusion-ограничения
// (два подтверждённых бронирования на пересекающиеся интервалы)
const pgExclusionViolation = "23P01"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Создание подтверждённого бронирования должно выполняться внутри
// сериализуемой транзакции вместе с проверкой пересечений: между чтением
// занятых интервалов и записью возможна гонка конкурентных запросов.
// Exclusion-ограничение в БД страхует инвариант, если проверка прошла
// по устаревшему снимку: в этом случае возвращается ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"court_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"total_price",
		).
		Values(
			booking.UserID,
			booking.CourtID,
			booking.Date,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.TotalPrice,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return nil, ErrSlotTaken
		}
		// Причина сохраняется через %w: ошибки сериализации (40001/40P01)
		// должны доходить до transaction manager для повтора
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"court_id",
		"date",
		"start_time",
		"end_time",
		"status",
		"total_price",
		"created_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CourtID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.TotalPrice,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"user_id",
		"court_id",
		"date",
		"start_time",
		"end_time",
		"status",
		"total_price",
		"created_at",
	).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetConfirmedForCourtDate получает подтверждённые бронирования корта на дату,
// упорядоченные по времени начала. Это снимок занятых интервалов таймлайна,
// против которого проверяется новое бронирование.
//
// Если вызов выполняется внутри транзакции, строки блокируются через
// FOR UPDATE: конкурентная транзакция на ту же пару (корт, дата) дождётся
// коммита и увидит свежий снимок.
func (r *Repository) GetConfirmedForCourtDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"user_id",
		"court_id",
		"date",
		"start_time",
		"end_time",
		"status",
		"total_price",
		"created_at",
	).
		From("bookings").
		Where(squirrel.Eq{
			"court_id": courtID,
			"date":     date,
			"status":   domain.StatusConfirmed,
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedForCourtDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		// Причина сохраняется через %w: FOR UPDATE под SERIALIZABLE может
		// упасть с 40001, и transaction manager должен это распознать
		return nil, fmt.Errorf("%w: GetConfirmedForCourtDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по корту, площадке (join через courts), дате и статусу
//
// Примеры использования:
//
// 1. Все активные бронирования площадки:
//    filter := domain.CourtBookingsFilter{FacilityID: ptr.Ptr(int64(5))}
//
// 2. Бронирования корта на конкретную дату, включая отменённые:
//    filter := domain.CourtBookingsFilter{CourtID: ptr.Ptr(int64(3)), Date: &date, IncludeInactive: true}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.user_id",
		"b.court_id",
		"b.date",
		"b.start_time",
		"b.end_time",
		"b.status",
		"b.total_price",
		"b.created_at",
	).
		From("bookings b")

	// Фильтрация по площадке требует join на courts
	if filter.FacilityID != nil {
		selectBuilder = selectBuilder.
			Join("courts c ON c.id = b.court_id").
			Where(squirrel.Eq{"c.facility_id": *filter.FacilityID})
	}

	if filter.CourtID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.court_id": *filter.CourtID})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.date": *filter.Date})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": inactiveStatusStrings})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("b.start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("b.date DESC, b.start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// Дата, время, корт и цена неизменяемы после создания: меняется только статус
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.CourtID,
			&booking.Date,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.TotalPrice,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
