package db_models

import "github.com/google/uuid"

type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
	SessionStatusAbandoned  SessionStatus = "ABANDONED"
)

// QuestionnaireSession tracks one user's run through a category's
// questions. At most one IN_PROGRESS session per (user, category) is
// kept alive; re-entry reuses it. COMPLETED is terminal.
type QuestionnaireSession struct {
	BaseModel
	UserProfileID uuid.UUID     `gorm:"type:uuid;not null;index:idx_session_user_category"`
	CategoryID    uuid.UUID     `gorm:"type:uuid;not null;index:idx_session_user_category"`
	Status        SessionStatus `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'"`
	StartedAt     int64         `gorm:"not null"`
	CompletedAt   *int64

	Answers         []Answer         `gorm:"foreignKey:SessionID"`
	Recommendations []Recommendation `gorm:"foreignKey:SessionID"`
}
