package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Indicator is one timestamped measurement attached to a zone and a source.
type Indicator struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	Type      string            `json:"type" gorm:"size:100;not null;index"`
	Value     float64           `json:"value" gorm:"not null"`
	Unit      string            `json:"unit" gorm:"size:50;not null"`
	Timestamp time.Time         `json:"timestamp" gorm:"not null;index"`
	ZoneID    uint              `json:"zone_id" gorm:"not null;index"`
	SourceID  uint              `json:"source_id" gorm:"not null;index"`
	ExtraData datatypes.JSONMap `json:"extra_data"`

	// Relations, used only so the schema carries the foreign keys.
	Zone   *Zone   `json:"-" gorm:"foreignKey:ZoneID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Source *Source `json:"-" gorm:"foreignKey:SourceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// BeforeSave stores timestamps in UTC so range filters and bucketing agree across dialects.
func (i *Indicator) BeforeSave(tx *gorm.DB) error {
	i.Timestamp = i.Timestamp.UTC()
	return nil
}

// IndicatorUpdate is a partial update; nil fields are left untouched.
type IndicatorUpdate struct {
	Type      *string
	Value     *float64
	Unit      *string
	Timestamp *time.Time
	ZoneID    *uint
	SourceID  *uint
	ExtraData map[string]interface{}
}

// IndicatorPoint is the projection used by time-series aggregation.
type IndicatorPoint struct {
	Timestamp time.Time
	Value     float64
}
