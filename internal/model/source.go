package model

import "time"

// Source is the provenance of indicator data (an external API, a file feed...).
// Ingestion identifies a source by name.
type Source struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description *string   `json:"description" gorm:"type:text"`
	URL         *string   `json:"url" gorm:"size:2048"`
	Type        *string   `json:"type" gorm:"size:50"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SourceUpdate is a partial update; nil fields are left untouched.
type SourceUpdate struct {
	Name        *string
	Description *string
	URL         *string
	Type        *string
}
