package db_models

import "github.com/google/uuid"

// UserHistory is an append-only audit record written when a session
// completes. Never updated or deleted.
type UserHistory struct {
	BaseModel
	UserProfileID uuid.UUID `gorm:"type:uuid;not null;index"`
	SessionID     uuid.UUID `gorm:"type:uuid;not null"`
	CategoryID    uuid.UUID `gorm:"type:uuid;not null"`
	AnsweredCount int       `gorm:"not null"`
	Summary       string    `gorm:"type:text"`
}
