package repository

import (
	"context"

	"gorm.io/gorm"

	"ecotrack/internal/model"
)

// ZoneRepository defines zone persistence operations.
type ZoneRepository interface {
	Create(ctx context.Context, zone *model.Zone) error
	Update(ctx context.Context, zone *model.Zone) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Zone, error)
	// FindByIdentity matches name and postal code exactly; a nil postal code matches NULL only.
	FindByIdentity(ctx context.Context, name string, postalCode *string) (*model.Zone, error)
	List(ctx context.Context) ([]model.Zone, error)
}

type zoneRepository struct {
	db *gorm.DB
}

// NewZoneRepository creates a new zone repository.
func NewZoneRepository(db *gorm.DB) ZoneRepository {
	return &zoneRepository{db: db}
}

// Create creates a new zone.
func (r *zoneRepository) Create(ctx context.Context, zone *model.Zone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

// Update saves every column of an existing zone.
func (r *zoneRepository) Update(ctx context.Context, zone *model.Zone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

// Delete removes a zone by ID.
func (r *zoneRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Zone{}, id)
}

// FindByID finds a zone by ID.
func (r *zoneRepository) FindByID(ctx context.Context, id uint) (*model.Zone, error) {
	var zone model.Zone
	if err := r.db.WithContext(ctx).First(&zone, id).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

// FindByIdentity finds the oldest zone with this exact (name, postal code) pair.
func (r *zoneRepository) FindByIdentity(ctx context.Context, name string, postalCode *string) (*model.Zone, error) {
	q := r.db.WithContext(ctx).Where("name = ?", name)
	if postalCode == nil {
		q = q.Where("postal_code IS NULL")
	} else {
		q = q.Where("postal_code = ?", *postalCode)
	}

	var zone model.Zone
	if err := q.Order("id").First(&zone).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

// List lists all zones.
func (r *zoneRepository) List(ctx context.Context) ([]model.Zone, error) {
	var zones []model.Zone
	if err := r.db.WithContext(ctx).Order("id").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}
