package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecotrack/internal/model"
)

const indicatorBatchSize = 500

// IndicatorRepository defines indicator persistence and query operations.
type IndicatorRepository interface {
	Create(ctx context.Context, indicator *model.Indicator) error
	CreateBatch(ctx context.Context, indicators []model.Indicator) error
	Update(ctx context.Context, indicator *model.Indicator) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Indicator, error)
	// List returns matching indicators, newest first, paginated after ordering.
	List(ctx context.Context, filter IndicatorFilter, page Page) ([]model.Indicator, error)
	Count(ctx context.Context, filter IndicatorFilter) (int64, error)
	// Average computes AVG(value) and COUNT(*) over matching indicators.
	// The average is meaningless when count is zero.
	Average(ctx context.Context, filter IndicatorFilter) (avg float64, count int64, err error)
	// Points returns (timestamp, value) pairs of matching indicators, oldest first.
	Points(ctx context.Context, filter IndicatorFilter) ([]model.IndicatorPoint, error)
}

type indicatorRepository struct {
	db *gorm.DB
}

// NewIndicatorRepository creates a new indicator repository.
func NewIndicatorRepository(db *gorm.DB) IndicatorRepository {
	return &indicatorRepository{db: db}
}

// Create creates a new indicator.
func (r *indicatorRepository) Create(ctx context.Context, indicator *model.Indicator) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(indicator).Error
}

// CreateBatch inserts indicators in batches; callers wrap it in a transaction
// when the whole set must land atomically.
func (r *indicatorRepository) CreateBatch(ctx context.Context, indicators []model.Indicator) error {
	if len(indicators) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(indicators, indicatorBatchSize).Error
}

// Update saves every column of an existing indicator.
func (r *indicatorRepository) Update(ctx context.Context, indicator *model.Indicator) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(indicator).Error
}

// Delete removes an indicator by ID.
func (r *indicatorRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Indicator{}, id)
}

// FindByID finds an indicator by ID.
func (r *indicatorRepository) FindByID(ctx context.Context, id uint) (*model.Indicator, error) {
	var indicator model.Indicator
	if err := r.db.WithContext(ctx).First(&indicator, id).Error; err != nil {
		return nil, err
	}
	return &indicator, nil
}

func (r *indicatorRepository) List(ctx context.Context, filter IndicatorFilter, page Page) ([]model.Indicator, error) {
	indicators := []model.Indicator{}
	if page.Empty() {
		return indicators, nil
	}
	q := r.db.WithContext(ctx).Model(&model.Indicator{}).Scopes(filter.Scope).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: indicatorColumn("timestamp"), Desc: true},
			{Column: indicatorColumn("id"), Desc: true},
		}})

	if err := page.apply(q).Find(&indicators).Error; err != nil {
		return nil, err
	}
	return indicators, nil
}

func (r *indicatorRepository) Count(ctx context.Context, filter IndicatorFilter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Indicator{}).Scopes(filter.Scope).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *indicatorRepository) Average(ctx context.Context, filter IndicatorFilter) (float64, int64, error) {
	var row struct {
		AvgValue sql.NullFloat64
		RowCount int64
	}
	err := r.db.WithContext(ctx).Model(&model.Indicator{}).Scopes(filter.Scope).
		Select("AVG(value) AS avg_value, COUNT(*) AS row_count").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.AvgValue.Float64, row.RowCount, nil
}

func (r *indicatorRepository) Points(ctx context.Context, filter IndicatorFilter) ([]model.IndicatorPoint, error) {
	var points []model.IndicatorPoint
	err := r.db.WithContext(ctx).Model(&model.Indicator{}).Scopes(filter.Scope).
		Select([]string{"timestamp", "value"}).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: indicatorColumn("timestamp")}}}).
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}
