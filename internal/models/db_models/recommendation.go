package db_models

import "github.com/google/uuid"

// Recommendation is written once per session; any existing row blocks
// regeneration. Rank is 1-based and unique within a session.
type Recommendation struct {
	BaseModel
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recommendation_session_rank"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Rank      int       `gorm:"not null;uniqueIndex:idx_recommendation_session_rank"`
	Score     float64   `gorm:"type:decimal(4,3);not null"`
	Reason    string    `gorm:"type:text"`

	Product Product `gorm:"foreignKey:ProductID"`
}
