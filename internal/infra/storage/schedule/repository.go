package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий недельных расписаний провайдеров
// Расписание хранится по одной строке на (provider_id, weekday)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderID получает недельное расписание провайдера
// Возвращает ErrScheduleNotFound, если у провайдера нет ни одной строки расписания
func (r *Repository) GetByProviderID(ctx context.Context, providerID int64) (*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"is_open",
		"start_minute",
		"end_minute",
		"updated_at",
	).
		From("provider_schedules").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	template := &domain.ScheduleTemplate{
		ProviderID: providerID,
		Days:       make(map[int]domain.DayRule, domain.DaysPerWeek),
	}

	for rows.Next() {
		var weekday int
		var isOpen bool
		var startMinute, endMinute int
		var updatedAt sql.NullTime

		if err := rows.Scan(&weekday, &isOpen, &startMinute, &endMinute, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByProviderID - scan row: %v", ErrScanRow, err)
		}

		template.Days[weekday] = domain.DayRule{
			IsOpen:      isOpen,
			StartMinute: types.MinuteOfDay(startMinute),
			EndMinute:   types.MinuteOfDay(endMinute),
		}

		if updatedAt.Valid && updatedAt.Time.After(template.UpdatedAt) {
			template.UpdatedAt = updatedAt.Time
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - rows error: %v", ErrScanRow, err)
	}

	if len(template.Days) == 0 {
		return nil, ErrScheduleNotFound
	}

	return template, nil
}

// Upsert сохраняет недельное расписание провайдера
// Каждая из семи строк вставляется с ON CONFLICT DO UPDATE, поэтому
// операция идемпотентна и не требует предварительного удаления
func (r *Repository) Upsert(ctx context.Context, template *domain.ScheduleTemplate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for weekday := domain.WeekdaySunday; weekday <= domain.WeekdaySaturday; weekday++ {
		rule := template.Days[weekday]

		query, args, err := psqlbuilder.Insert("provider_schedules").
			Columns(
				"provider_id",
				"weekday",
				"is_open",
				"start_minute",
				"end_minute",
			).
			Values(
				template.ProviderID,
				weekday,
				rule.IsOpen,
				rule.StartMinute.Int(),
				rule.EndMinute.Int(),
			).
			Suffix(`ON CONFLICT (provider_id, weekday) DO UPDATE SET
				is_open = EXCLUDED.is_open,
				start_minute = EXCLUDED.start_minute,
				end_minute = EXCLUDED.end_minute,
				updated_at = NOW()`).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Upsert - execute insert for weekday %d: %v", ErrExecQuery, weekday, err)
		}
	}

	return nil
}
