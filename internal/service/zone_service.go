package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/model"
	"ecotrack/internal/repository"
)

// ZoneService manages zones.
type ZoneService interface {
	ListZones(ctx context.Context) ([]model.Zone, error)
	GetZone(ctx context.Context, id uint) (*model.Zone, error)
	CreateZone(ctx context.Context, zone *model.Zone) error
	UpdateZone(ctx context.Context, id uint, update model.ZoneUpdate) (*model.Zone, error)
	// DeleteZone fails with ErrReferenceInUse while indicators point at the zone.
	DeleteZone(ctx context.Context, id uint) error
}

type zoneService struct {
	store repository.Store
}

// NewZoneService builds a ZoneService.
func NewZoneService(store repository.Store) ZoneService {
	return &zoneService{store: store}
}

func (s *zoneService) ListZones(ctx context.Context) ([]model.Zone, error) {
	return s.store.Zones().List(ctx)
}

func (s *zoneService) GetZone(ctx context.Context, id uint) (*model.Zone, error) {
	zone, err := s.store.Zones().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return zone, nil
}

func (s *zoneService) CreateZone(ctx context.Context, zone *model.Zone) error {
	zone.Name = strings.TrimSpace(zone.Name)
	if zone.Name == "" {
		return fmt.Errorf("%w: zone name is required", apperrors.ErrValidation)
	}
	zone.PostalCode = model.NormalizePostalCode(zone.PostalCode)
	return s.store.Zones().Create(ctx, zone)
}

func (s *zoneService) UpdateZone(ctx context.Context, id uint, update model.ZoneUpdate) (*model.Zone, error) {
	zone, err := s.store.Zones().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: zone name is required", apperrors.ErrValidation)
		}
		zone.Name = name
	}
	if update.PostalCode != nil {
		zone.PostalCode = model.NormalizePostalCode(update.PostalCode)
	}

	if err := s.store.Zones().Update(ctx, zone); err != nil {
		return nil, fmt.Errorf("update zone: %w", err)
	}
	return zone, nil
}

func (s *zoneService) DeleteZone(ctx context.Context, id uint) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Zones().FindByID(ctx, id); err != nil {
			return notFound(err)
		}
		refs, err := tx.Indicators().Count(ctx, repository.IndicatorFilter{ZoneID: &id})
		if err != nil {
			return fmt.Errorf("count zone indicators: %w", err)
		}
		if refs > 0 {
			return apperrors.ErrReferenceInUse
		}
		return deleteFailed(tx.Zones().Delete(ctx, id))
	})
}
