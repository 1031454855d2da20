package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IndicatorFilter holds the optional predicates on indicators. A nil field
// places no constraint on its column; set fields are combined with AND.
type IndicatorFilter struct {
	FromDate *time.Time // inclusive
	ToDate   *time.Time // inclusive
	ZoneID   *uint
	SourceID *uint
	Type     *string
}

// Scope applies the filter to a query on the indicators table.
func (f IndicatorFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.FromDate != nil {
		db = db.Where(clause.Gte{Column: indicatorColumn("timestamp"), Value: f.FromDate.UTC()})
	}
	if f.ToDate != nil {
		db = db.Where(clause.Lte{Column: indicatorColumn("timestamp"), Value: f.ToDate.UTC()})
	}
	if f.ZoneID != nil {
		db = db.Where(clause.Eq{Column: indicatorColumn("zone_id"), Value: *f.ZoneID})
	}
	if f.SourceID != nil {
		db = db.Where(clause.Eq{Column: indicatorColumn("source_id"), Value: *f.SourceID})
	}
	if f.Type != nil {
		db = db.Where(clause.Eq{Column: indicatorColumn("type"), Value: *f.Type})
	}
	return db
}

// indicatorColumn quotes through the dialect; "type" and "timestamp" are keywords in some of them.
func indicatorColumn(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}
