package model

import (
	"strings"
	"time"
)

// Zone is a named geographic area indicators are attributed to.
// Ingestion identifies a zone by the (name, postal_code) pair.
type Zone struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null;index:idx_zone_identity,priority:1"`
	PostalCode *string   `json:"postal_code" gorm:"size:20;index:idx_zone_identity,priority:2"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ZoneUpdate is a partial update; nil fields are left untouched.
type ZoneUpdate struct {
	Name       *string
	PostalCode *string
}

// NormalizePostalCode maps a blank postal code to nil so "" and NULL identify the same zone.
func NormalizePostalCode(postalCode *string) *string {
	if postalCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*postalCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
