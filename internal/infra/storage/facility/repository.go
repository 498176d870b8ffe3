package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RentEase-BookingService/pkg/psqlbuilder"
)

// minPriceJoin подзапрос минимальной цены корта на площадку
// Используется в публичном списке для сортировки "от дешёвых"
const minPriceJoin = "(SELECT facility_id, MIN(price_per_hour) AS min_price FROM courts GROUP BY facility_id) p ON p.facility_id = f.id"

// Repository репозиторий для работы с площадками
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую площадку (в статусе pending до модерации)
func (r *Repository) Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facilities").
		Columns(
			"owner_id",
			"name",
			"location",
			"description",
			"status",
		).
		Values(
			facility.OwnerID,
			facility.Name,
			facility.Location,
			facility.Description,
			facility.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&facility.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	facility.CreatedAt = createdAt.Time

	return facility, nil
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"location",
		"description",
		"status",
		"created_at",
	).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var facility domain.Facility
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&facility.ID,
		&facility.OwnerID,
		&facility.Name,
		&facility.Location,
		&facility.Description,
		&facility.Status,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	facility.CreatedAt = createdAt.Time

	return &facility, nil
}

// ListApproved возвращает страницу одобренных площадок по фильтру
// вместе с общим количеством подходящих строк (для пагинации).
// Сортировка: по минимальной цене корта (NULLS LAST), затем по названию.
func (r *Repository) ListApproved(ctx context.Context, filter domain.FacilityFilter) ([]*domain.FacilityWithPrice, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		b = b.Where(squirrel.Eq{"f.status": domain.FacilityApproved})

		if filter.Query != "" {
			like := "%" + filter.Query + "%"
			b = b.Where(squirrel.Or{
				squirrel.ILike{"f.name": like},
				squirrel.ILike{"f.description": like},
			})
		}
		if filter.Location != "" {
			b = b.Where(squirrel.ILike{"f.location": "%" + filter.Location + "%"})
		}
		if filter.Sport != "" {
			b = b.Where(squirrel.Expr(
				"EXISTS (SELECT 1 FROM courts c WHERE c.facility_id = f.id AND c.sport_type ILIKE ?)",
				"%"+filter.Sport+"%",
			))
		}
		if filter.PriceMin != nil {
			b = b.Where(squirrel.GtOrEq{"p.min_price": *filter.PriceMin})
		}
		if filter.PriceMax != nil {
			b = b.Where(squirrel.LtOrEq{"p.min_price": *filter.PriceMax})
		}
		return b
	}

	// Общее количество строк под фильтром
	countQuery, countArgs, err := applyFilter(
		psqlbuilder.Select("COUNT(*)").
			From("facilities f").
			LeftJoin(minPriceJoin),
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListApproved - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListApproved - scan count: %v", ErrScanRow, err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = domain.DefaultPerPage
	}
	if perPage > domain.MaxPerPage {
		perPage = domain.MaxPerPage
	}

	query, args, err := applyFilter(
		psqlbuilder.Select(
			"f.id",
			"f.owner_id",
			"f.name",
			"f.location",
			"f.description",
			"f.status",
			"f.created_at",
			"p.min_price",
		).
			From("facilities f").
			LeftJoin(minPriceJoin),
	).
		OrderBy("p.min_price ASC NULLS LAST", "f.name ASC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListApproved - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListApproved - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	results := make([]*domain.FacilityWithPrice, 0)

	for rows.Next() {
		var item domain.FacilityWithPrice
		var createdAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.Name,
			&item.Location,
			&item.Description,
			&item.Status,
			&createdAt,
			&item.StartingPrice,
		)

		if err != nil {
			return nil, 0, fmt.Errorf("%w: ListApproved - scan row: %v", ErrScanRow, err)
		}

		item.CreatedAt = createdAt.Time

		results = append(results, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: ListApproved - rows error: %v", ErrScanRow, err)
	}

	return results, total, nil
}

// ListByStatus возвращает площадки в указанном статусе (панель модерации)
func (r *Repository) ListByStatus(ctx context.Context, status domain.FacilityStatus) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"location",
		"description",
		"status",
		"created_at",
	).
		From("facilities").
		Where(squirrel.Eq{"status": status}).
		OrderBy("id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanFacilities(rows)
}

// Update обновляет редактируемые поля площадки
// Статус меняется отдельно через UpdateStatus (модерация)
func (r *Repository) Update(ctx context.Context, id int64, name, location string, description *string) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
		Set("name", name).
		Set("location", location).
		Set("description", description).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return nil, ErrFacilityNotFound
	}

	return r.GetByID(ctx, id)
}

// UpdateStatus меняет статус модерации площадки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.FacilityStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
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
		return ErrFacilityNotFound
	}

	return nil
}

// scanFacilities сканирует результаты запроса в слайс площадок
func (r *Repository) scanFacilities(rows *sql.Rows) ([]*domain.Facility, error) {
	facilities := make([]*domain.Facility, 0)

	for rows.Next() {
		var facility domain.Facility
		var createdAt sql.NullTime

		err := rows.Scan(
			&facility.ID,
			&facility.OwnerID,
			&facility.Name,
			&facility.Location,
			&facility.Description,
			&facility.Status,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanFacilities - scan row: %v", ErrScanRow, err)
		}

		facility.CreatedAt = createdAt.Time

		facilities = append(facilities, &facility)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanFacilities - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}
