package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	apperrors "ecotrack/internal/errors"
	"ecotrack/internal/model"
	"ecotrack/internal/repository"
)

// SourceService manages data sources.
type SourceService interface {
	ListSources(ctx context.Context) ([]model.Source, error)
	GetSource(ctx context.Context, id uint) (*model.Source, error)
	CreateSource(ctx context.Context, source *model.Source) error
	UpdateSource(ctx context.Context, id uint, update model.SourceUpdate) (*model.Source, error)
	// DeleteSource fails with ErrReferenceInUse while indicators point at the source.
	DeleteSource(ctx context.Context, id uint) error
}

type sourceService struct {
	store repository.Store
}

// NewSourceService builds a SourceService.
func NewSourceService(store repository.Store) SourceService {
	return &sourceService{store: store}
}

func (s *sourceService) ListSources(ctx context.Context) ([]model.Source, error) {
	return s.store.Sources().List(ctx)
}

func (s *sourceService) GetSource(ctx context.Context, id uint) (*model.Source, error) {
	source, err := s.store.Sources().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return source, nil
}

func (s *sourceService) CreateSource(ctx context.Context, source *model.Source) error {
	source.Name = strings.TrimSpace(source.Name)
	if source.Name == "" {
		return fmt.Errorf("%w: source name is required", apperrors.ErrValidation)
	}
	if err := validateSourceURL(source.URL); err != nil {
		return err
	}
	return s.store.Sources().Create(ctx, source)
}

func (s *sourceService) UpdateSource(ctx context.Context, id uint, update model.SourceUpdate) (*model.Source, error) {
	source, err := s.store.Sources().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: source name is required", apperrors.ErrValidation)
		}
		source.Name = name
	}
	if update.Description != nil {
		source.Description = update.Description
	}
	if update.URL != nil {
		if err := validateSourceURL(update.URL); err != nil {
			return nil, err
		}
		source.URL = update.URL
	}
	if update.Type != nil {
		source.Type = update.Type
	}

	if err := s.store.Sources().Update(ctx, source); err != nil {
		return nil, fmt.Errorf("update source: %w", err)
	}
	return source, nil
}

func (s *sourceService) DeleteSource(ctx context.Context, id uint) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Sources().FindByID(ctx, id); err != nil {
			return notFound(err)
		}
		refs, err := tx.Indicators().Count(ctx, repository.IndicatorFilter{SourceID: &id})
		if err != nil {
			return fmt.Errorf("count source indicators: %w", err)
		}
		if refs > 0 {
			return apperrors.ErrReferenceInUse
		}
		return deleteFailed(tx.Sources().Delete(ctx, id))
	})
}

// validateSourceURL accepts nil or an absolute http(s) URL.
func validateSourceURL(raw *string) error {
	if raw == nil {
		return nil
	}
	u, err := url.Parse(*raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: url must be an absolute http(s) URL", apperrors.ErrValidation)
	}
	return nil
}
