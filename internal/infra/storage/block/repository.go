package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	"github.com/m04kA/BMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/BMP-BookingService/pkg/psqlbuilder"
)

var blockColumns = []string{
	"id",
	"business_id",
	"starts_at",
	"ends_at",
	"reason",
	"created_by",
	"created_at",
}

// Repository репозиторий для работы с заблокированными интервалами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заблокированных интервалов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заблокированный интервал
func (r *Repository) Create(ctx context.Context, block *domain.Block) (*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_intervals").
		Columns(
			"business_id",
			"starts_at",
			"ends_at",
			"reason",
			"created_by",
		).
		Values(
			block.BusinessID,
			block.StartsAt,
			block.EndsAt,
			block.Reason,
			block.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByID получает заблокированный интервал по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var block domain.Block
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&block.BusinessID,
		&block.StartsAt,
		&block.EndsAt,
		&block.Reason,
		&block.CreatedBy,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	block.CreatedAt = createdAt.Time

	return &block, nil
}

// GetOverlappingDay получает все блоки, реально пересекающие календарный день
// Фильтр по настоящему пересечению интервалов с границами дня [00:00, 24:00),
// а не по времени начала: блок, начавшийся накануне и продолжающийся в
// запрошенный день, тоже попадает в выборку
func (r *Repository) GetOverlappingDay(ctx context.Context, businessID int64, date time.Time) ([]*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_intervals").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Lt{"starts_at": dayEnd}).
		Where(squirrel.Gt{"ends_at": dayStart}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlappingDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// GetByBusiness получает все заблокированные интервалы бизнеса
// начиная с указанной даты (для управления календарем)
func (r *Repository) GetByBusiness(ctx context.Context, businessID int64, from *time.Time) ([]*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("blocked_intervals").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("starts_at ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"ends_at": *from})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// Delete удаляет заблокированный интервал
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// scanBlocks сканирует результаты запроса в слайс блоков
func (r *Repository) scanBlocks(rows *sql.Rows) ([]*domain.Block, error) {
	blocks := make([]*domain.Block, 0)

	for rows.Next() {
		var block domain.Block
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.BusinessID,
			&block.StartsAt,
			&block.EndsAt,
			&block.Reason,
			&block.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time

		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
