package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CatalogRelease records which dataset version the catalog tables hold.
type CatalogRelease struct {
	BaseModel
	Version string `gorm:"uniqueIndex;not null"`
}

// CatalogDestination rows are ordered by Position, which is the catalog iteration order.
type CatalogDestination struct {
	BaseModel
	Key        string            `gorm:"uniqueIndex;not null"`
	Name       string            `gorm:"not null"`
	Country    string            `gorm:"size:64"`
	Locale     string            `gorm:"size:16"`
	ImageURL   string            `gorm:"size:512"`
	Aliases    pq.StringArray    `gorm:"type:text[]"`
	Position   int               `gorm:"not null;default:0"`
	Activities []CatalogActivity `gorm:"foreignKey:DestinationID"` // Explicit foreign key
}

type CatalogActivity struct {
	BaseModel
	DestinationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Category      string    `gorm:"not null;index"`
	Name          string    `gorm:"not null"`
	Position      int       `gorm:"not null;default:0"`
}
