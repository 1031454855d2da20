// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecotrack/internal/db"
	"ecotrack/internal/model"
)

var dbSeq atomic.Int64

// NewDB opens a fresh, migrated in-memory SQLite database with foreign keys enforced.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ecotrack_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	gormDB, err := gorm.Open(sqlite.Open(dsn), db.Options())
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

// SeedZone inserts a zone.
func SeedZone(t *testing.T, gormDB *gorm.DB, name string, postalCode *string) model.Zone {
	t.Helper()
	zone := model.Zone{Name: name, PostalCode: postalCode}
	require.NoError(t, gormDB.Create(&zone).Error)
	return zone
}

// SeedSource inserts a source.
func SeedSource(t *testing.T, gormDB *gorm.DB, name string) model.Source {
	t.Helper()
	source := model.Source{Name: name}
	require.NoError(t, gormDB.Create(&source).Error)
	return source
}

// SeedIndicator inserts an indicator.
func SeedIndicator(t *testing.T, gormDB *gorm.DB, typ string, value float64, ts time.Time, zoneID, sourceID uint) model.Indicator {
	t.Helper()
	indicator := model.Indicator{
		Type:      typ,
		Value:     value,
		Unit:      "u",
		Timestamp: ts,
		ZoneID:    zoneID,
		SourceID:  sourceID,
	}
	require.NoError(t, gormDB.Omit("Zone", "Source").Create(&indicator).Error)
	return indicator
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
