package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/model"
	"ecotrack/internal/repository"
)

// IndicatorService manages indicators. Writes verify that zone and source exist.
type IndicatorService interface {
	ListIndicators(ctx context.Context, filter repository.IndicatorFilter, page repository.Page) ([]model.Indicator, error)
	GetIndicator(ctx context.Context, id uint) (*model.Indicator, error)
	CreateIndicator(ctx context.Context, indicator *model.Indicator) error
	UpdateIndicator(ctx context.Context, id uint, update model.IndicatorUpdate) (*model.Indicator, error)
	DeleteIndicator(ctx context.Context, id uint) error
}

type indicatorService struct {
	store repository.Store
}

// NewIndicatorService builds an IndicatorService.
func NewIndicatorService(store repository.Store) IndicatorService {
	return &indicatorService{store: store}
}

func (s *indicatorService) ListIndicators(ctx context.Context, filter repository.IndicatorFilter, page repository.Page) ([]model.Indicator, error) {
	return s.store.Indicators().List(ctx, filter, page.WithDefault(repository.DefaultListLimit))
}

func (s *indicatorService) GetIndicator(ctx context.Context, id uint) (*model.Indicator, error) {
	indicator, err := s.store.Indicators().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return indicator, nil
}

func (s *indicatorService) CreateIndicator(ctx context.Context, indicator *model.Indicator) error {
	if err := validateIndicator(indicator); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := checkReferences(ctx, tx, indicator.ZoneID, indicator.SourceID); err != nil {
			return err
		}
		if err := tx.Indicators().Create(ctx, indicator); err != nil {
			return referenceFailed(err)
		}
		return nil
	})
}

func (s *indicatorService) UpdateIndicator(ctx context.Context, id uint, update model.IndicatorUpdate) (*model.Indicator, error) {
	var updated *model.Indicator
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		indicator, err := tx.Indicators().FindByID(ctx, id)
		if err != nil {
			return notFound(err)
		}

		if update.Type != nil {
			indicator.Type = *update.Type
		}
		if update.Value != nil {
			indicator.Value = *update.Value
		}
		if update.Unit != nil {
			indicator.Unit = *update.Unit
		}
		if update.Timestamp != nil {
			indicator.Timestamp = *update.Timestamp
		}
		if update.ZoneID != nil {
			indicator.ZoneID = *update.ZoneID
		}
		if update.SourceID != nil {
			indicator.SourceID = *update.SourceID
		}
		if update.ExtraData != nil {
			indicator.ExtraData = update.ExtraData
		}

		if err := validateIndicator(indicator); err != nil {
			return err
		}
		if update.ZoneID != nil || update.SourceID != nil {
			if err := checkReferences(ctx, tx, indicator.ZoneID, indicator.SourceID); err != nil {
				return err
			}
		}
		if err := tx.Indicators().Update(ctx, indicator); err != nil {
			return referenceFailed(err)
		}
		updated = indicator
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *indicatorService) DeleteIndicator(ctx context.Context, id uint) error {
	if err := s.store.Indicators().Delete(ctx, id); err != nil {
		return notFound(err)
	}
	return nil
}

func validateIndicator(indicator *model.Indicator) error {
	indicator.Type = strings.TrimSpace(indicator.Type)
	indicator.Unit = strings.TrimSpace(indicator.Unit)
	switch {
	case indicator.Type == "":
		return fmt.Errorf("%w: type is required", apperrors.ErrValidation)
	case indicator.Unit == "":
		return fmt.Errorf("%w: unit is required", apperrors.ErrValidation)
	case !isFinite(indicator.Value):
		return fmt.Errorf("%w: value is not a finite number", apperrors.ErrValidation)
	case indicator.Timestamp.IsZero():
		return fmt.Errorf("%w: timestamp is required", apperrors.ErrValidation)
	}
	return nil
}

// checkReferences requires both the zone and the source to exist.
func checkReferences(ctx context.Context, tx repository.Store, zoneID, sourceID uint) error {
	if _, err := tx.Zones().FindByID(ctx, zoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: zone %d does not exist", apperrors.ErrInvalidReference, zoneID)
		}
		return err
	}
	if _, err := tx.Sources().FindByID(ctx, sourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: source %d does not exist", apperrors.ErrInvalidReference, sourceID)
		}
		return err
	}
	return nil
}

func referenceFailed(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.ErrInvalidReference
	}
	return err
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
