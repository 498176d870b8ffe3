package court

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RentEase-BookingService/internal/domain"
	"github.com/m04kA/RentEase-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RentEase-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с кортами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория кортов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый корт
func (r *Repository) Create(ctx context.Context, court *domain.Court) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("courts").
		Columns(
			"facility_id",
			"name",
			"sport_type",
			"price_per_hour",
			"open_time",
			"close_time",
		).
		Values(
			court.FacilityID,
			court.Name,
			court.SportType,
			court.PricePerHour,
			court.OpenTime,
			court.CloseTime,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&court.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return court, nil
}

// GetByID получает корт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"facility_id",
		"name",
		"sport_type",
		"price_per_hour",
		"open_time",
		"close_time",
	).
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var court domain.Court

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&court.ID,
		&court.FacilityID,
		&court.Name,
		&court.SportType,
		&court.PricePerHour,
		&court.OpenTime,
		&court.CloseTime,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan court: %v", ErrScanRow, err)
	}

	return &court, nil
}

// ListByFacility получает все корты площадки
func (r *Repository) ListByFacility(ctx context.Context, facilityID int64) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"facility_id",
		"name",
		"sport_type",
		"price_per_hour",
		"open_time",
		"close_time",
	).
		From("courts").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByFacility - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFacility - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)

	for rows.Next() {
		var court domain.Court

		err := rows.Scan(
			&court.ID,
			&court.FacilityID,
			&court.Name,
			&court.SportType,
			&court.PricePerHour,
			&court.OpenTime,
			&court.CloseTime,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListByFacility - scan row: %v", ErrScanRow, err)
		}

		courts = append(courts, &court)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByFacility - rows error: %v", ErrScanRow, err)
	}

	return courts, nil
}
