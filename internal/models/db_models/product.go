package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product rows are written by the marketplace ingestion job keyed by
// ExternalURL; the questionnaire side only reads them.
type Product struct {
	BaseModel
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null;index"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:decimal(12,2);not null"`
	Rating      float64   `gorm:"type:decimal(3,2);default:0;index"`
	Features    string    `gorm:"type:text"`
	ExternalURL string    `gorm:"uniqueIndex;not null"`
	ImageURL    string

	// Marketplace metadata refreshed on every sync.
	ReviewCount  int64          `gorm:"default:0"`
	ShopName     string
	Tags         pq.StringArray `gorm:"type:text[]"`
	LastSyncedAt int64
}
