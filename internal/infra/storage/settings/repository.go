package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	"github.com/m04kA/BMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/BMP-BookingService/pkg/psqlbuilder"
)

var settingsColumns = []string{
	"id",
	"business_id",
	"slot_granularity_minutes",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с настройками бронирования бизнеса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusinessID получает настройки бронирования бизнеса
// Отсутствие строки - нормальная ситуация: возвращается ErrSettingsNotFound,
// вызывающая сторона применяет значения по умолчанию
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessBookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("business_booking_settings").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.BusinessBookingSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.SlotGranularityMinutes,
		&s.AdvanceBookingDays,
		&s.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет настройки бронирования бизнеса
func (r *Repository) Upsert(ctx context.Context, s *domain.BusinessBookingSettings) (*domain.BusinessBookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_booking_settings").
		Columns(
			"business_id",
			"slot_granularity_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			s.BusinessID,
			s.SlotGranularityMinutes,
			s.AdvanceBookingDays,
			s.MinBookingNoticeMinutes,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
