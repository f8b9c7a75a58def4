package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Answer holds exactly one value shape per question type: OptionIDs for
// choice questions (the full selection, not just the first), RangeValue
// for RANGE, TextValue for TEXT. The (session, question) pair is unique
// so re-submitting a question replaces the earlier row.
type Answer struct {
	BaseModel
	SessionID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_answer_session_question"`
	QuestionID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_answer_session_question"`
	OptionIDs  pq.StringArray `gorm:"type:text[]"`
	RangeValue *int
	TextValue  *string `gorm:"type:text"`

	Question Question `gorm:"foreignKey:QuestionID"`
}
