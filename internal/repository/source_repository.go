package repository

import (
	"context"

	"gorm.io/gorm"

	"ecotrack/internal/model"
)

// SourceRepository defines source persistence operations.
type SourceRepository interface {
	Create(ctx context.Context, source *model.Source) error
	Update(ctx context.Context, source *model.Source) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Source, error)
	FindByName(ctx context.Context, name string) (*model.Source, error)
	List(ctx context.Context) ([]model.Source, error)
}

type sourceRepository struct {
	db *gorm.DB
}

// NewSourceRepository creates a new source repository.
func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &sourceRepository{db: db}
}

// Create creates a new source.
func (r *sourceRepository) Create(ctx context.Context, source *model.Source) error {
	return r.db.WithContext(ctx).Create(source).Error
}

// Update saves every column of an existing source.
func (r *sourceRepository) Update(ctx context.Context, source *model.Source) error {
	return r.db.WithContext(ctx).Save(source).Error
}

// Delete removes a source by ID.
func (r *sourceRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Source{}, id)
}

// FindByID finds a source by ID.
func (r *sourceRepository) FindByID(ctx context.Context, id uint) (*model.Source, error) {
	var source model.Source
	if err := r.db.WithContext(ctx).First(&source, id).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

// FindByName finds the oldest source with exactly this name.
func (r *sourceRepository) FindByName(ctx context.Context, name string) (*model.Source, error) {
	var source model.Source
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&source).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

// List lists all sources.
func (r *sourceRepository) List(ctx context.Context) ([]model.Source, error) {
	var sources []model.Source
	if err := r.db.WithContext(ctx).Order("id").Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}
