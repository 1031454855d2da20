package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"ecotrack/internal/metrics"
	"ecotrack/internal/model"
	"ecotrack/internal/repository"
	"ecotrack/internal/weather"
)

// Feed names, used in logs, metrics and extra_data.
const (
	FeedWeather = "open-meteo"
	FeedCSV     = "csv"
)

// SourceInfo is the metadata a feed registers its Source with.
type SourceInfo struct {
	Name        string
	Description string
	URL         string
	Type        string
}

var (
	WeatherSource = SourceInfo{
		Name:        "Open-Meteo",
		Description: "Weather data from the Open-Meteo API",
		URL:         "https://open-meteo.com/",
		Type:        "api",
	}
	CSVSource = SourceInfo{
		Name:        "CSV Pollution",
		Description: "Pollution data imported from an open-data CSV file",
		URL:         "https://www.data.gouv.fr/",
		Type:        "csv",
	}
)

// WeatherRequest names the zone and coordinates of a weather ingestion.
type WeatherRequest struct {
	City       string
	PostalCode *string
	Latitude   float64
	Longitude  float64
}

// CSVOptions tunes a CSV ingestion.
type CSVOptions struct {
	// SkipInvalid imports the valid rows and reports the rest instead of aborting.
	SkipInvalid bool
}

// IngestionResult summarizes a committed ingestion run.
type IngestionResult struct {
	Feed         string     `json:"feed"`
	SourceID     uint       `json:"source_id,omitempty"`
	Indicators   int        `json:"indicators"`
	ZonesCreated int        `json:"zones_created"`
	Skipped      []RowError `json:"skipped,omitempty"`
}

// WeatherFetcher provides hourly weather samples.
type WeatherFetcher interface {
	FetchHourly(ctx context.Context, latitude, longitude float64) (*weather.HourlySeries, error)
}

// IngestionService imports external feeds, reusing sources and zones by identity.
type IngestionService interface {
	GetOrCreateSource(ctx context.Context, info SourceInfo) (*model.Source, bool, error)
	GetOrCreateZone(ctx context.Context, name string, postalCode *string) (*model.Zone, bool, error)
	IngestWeather(ctx context.Context, req WeatherRequest) (*IngestionResult, error)
	IngestCSV(ctx context.Context, path string, opts CSVOptions) (*IngestionResult, error)
}

type ingestionService struct {
	store   repository.Store
	weather WeatherFetcher
	logger  zerolog.Logger
}

// NewIngestionService builds an IngestionService.
func NewIngestionService(store repository.Store, fetcher WeatherFetcher, logger zerolog.Logger) IngestionService {
	return &ingestionService{
		store:   store,
		weather: fetcher,
		logger:  logger.With().Str("component", "ingestion").Logger(),
	}
}

func (s *ingestionService) GetOrCreateSource(ctx context.Context, info SourceInfo) (source *model.Source, created bool, err error) {
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		source, created, err = getOrCreateSource(ctx, tx, info)
		return err
	})
	return source, created, err
}

func (s *ingestionService) GetOrCreateZone(ctx context.Context, name string, postalCode *string) (zone *model.Zone, created bool, err error) {
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		zone, created, err = getOrCreateZone(ctx, tx, name, postalCode)
		return err
	})
	return zone, created, err
}

// getOrCreateSource finds a source by exact name. Concurrent callers may both create one;
// nothing in the schema prevents it.
func getOrCreateSource(ctx context.Context, tx repository.Store, info SourceInfo) (*model.Source, bool, error) {
	existing, err := tx.Sources().FindByName(ctx, info.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find source %q: %w", info.Name, err)
	}

	source := &model.Source{
		Name:        info.Name,
		Description: optional(info.Description),
		URL:         optional(info.URL),
		Type:        optional(info.Type),
	}
	if err := tx.Sources().Create(ctx, source); err != nil {
		return nil, false, fmt.Errorf("create source %q: %w", info.Name, err)
	}
	return source, true, nil
}

// getOrCreateZone finds a zone by exact (name, postal code). Blank postal codes match NULL.
func getOrCreateZone(ctx context.Context, tx repository.Store, name string, postalCode *string) (*model.Zone, bool, error) {
	postalCode = model.NormalizePostalCode(postalCode)

	existing, err := tx.Zones().FindByIdentity(ctx, name, postalCode)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find zone %q: %w", name, err)
	}

	zone := &model.Zone{Name: name, PostalCode: postalCode}
	if err := tx.Zones().Create(ctx, zone); err != nil {
		return nil, false, fmt.Errorf("create zone %q: %w", name, err)
	}
	return zone, true, nil
}

// IngestWeather fetches the provider first; nothing is written unless the whole payload is valid.
func (s *ingestionService) IngestWeather(ctx context.Context, req WeatherRequest) (result *IngestionResult, err error) {
	logger := s.logger.With().Str("feed", FeedWeather).Str("city", req.City).Logger()
	defer func() { s.finish(logger, FeedWeather, result, err) }()

	series, err := s.weather.FetchHourly(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	result = &IngestionResult{Feed: FeedWeather}
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		source, _, err := getOrCreateSource(ctx, tx, WeatherSource)
		if err != nil {
			return err
		}
		zone, created, err := getOrCreateZone(ctx, tx, req.City, req.PostalCode)
		if err != nil {
			return err
		}
		if created {
			result.ZonesCreated++
		}
		result.SourceID = source.ID

		indicators := make([]model.Indicator, 0, 2*series.Len())
		for i, ts := range series.Times {
			indicators = append(indicators,
				model.Indicator{
					Type:      "temperature",
					Value:     series.Temperature[i],
					Unit:      "°C",
					Timestamp: ts,
					ZoneID:    zone.ID,
					SourceID:  source.ID,
					ExtraData: map[string]interface{}{"from": FeedWeather},
				},
				model.Indicator{
					Type:      "windspeed",
					Value:     series.WindSpeed[i],
					Unit:      "km/h",
					Timestamp: ts,
					ZoneID:    zone.ID,
					SourceID:  source.ID,
					ExtraData: map[string]interface{}{"from": FeedWeather},
				},
			)
		}
		if err := tx.Indicators().CreateBatch(ctx, indicators); err != nil {
			return fmt.Errorf("insert weather indicators: %w", err)
		}
		result.Indicators = len(indicators)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IngestCSV imports a pollution file. A missing file yields an empty result.
func (s *ingestionService) IngestCSV(ctx context.Context, path string, opts CSVOptions) (result *IngestionResult, err error) {
	logger := s.logger.With().Str("feed", FeedCSV).Str("path", path).Logger()

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Msg("csv file not found, ingestion skipped")
		metrics.IngestionRuns.WithLabelValues(FeedCSV, "skipped").Inc()
		return &IngestionResult{Feed: FeedCSV}, nil
	}
	defer func() { s.finish(logger, FeedCSV, result, err) }()
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	records, skipped, err := readCSV(file, opts.SkipInvalid)
	if err != nil {
		return nil, err
	}
	for _, rowErr := range skipped {
		logger.Warn().Int("line", rowErr.Line).Str("reason", rowErr.Reason).Msg("csv row skipped")
	}

	result = &IngestionResult{Feed: FeedCSV, Skipped: skipped}
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		source, _, err := getOrCreateSource(ctx, tx, CSVSource)
		if err != nil {
			return err
		}
		result.SourceID = source.ID

		indicators := make([]model.Indicator, 0, len(records))
		for _, rec := range records {
			zone, created, err := getOrCreateZone(ctx, tx, rec.ZoneName, rec.PostalCode)
			if err != nil {
				return fmt.Errorf("line %d: %w", rec.Line, err)
			}
			if created {
				result.ZonesCreated++
			}
			indicators = append(indicators, model.Indicator{
				Type:      rec.Type,
				Value:     rec.Value,
				Unit:      rec.Unit,
				Timestamp: rec.Timestamp,
				ZoneID:    zone.ID,
				SourceID:  source.ID,
				ExtraData: map[string]interface{}{"from": FeedCSV},
			})
		}
		if err := tx.Indicators().CreateBatch(ctx, indicators); err != nil {
			return fmt.Errorf("insert csv indicators: %w", err)
		}
		result.Indicators = len(indicators)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ingestionService) finish(logger zerolog.Logger, feed string, result *IngestionResult, err error) {
	if err != nil {
		metrics.IngestionRuns.WithLabelValues(feed, "failure").Inc()
		logger.Error().Err(err).Msg("ingestion failed")
		return
	}
	metrics.IngestionRuns.WithLabelValues(feed, "success").Inc()
	metrics.IngestedIndicators.WithLabelValues(feed).Add(float64(result.Indicators))
	logger.Info().
		Int("indicators", result.Indicators).
		Int("zones_created", result.ZonesCreated).
		Int("skipped", len(result.Skipped)).
		Msg("ingestion committed")
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
