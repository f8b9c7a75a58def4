package db_models

import "github.com/google/uuid"

type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeRange          QuestionType = "RANGE"
	QuestionTypeText           QuestionType = "TEXT"
)

// Question belongs to exactly one category. Presentation order is
// creation order, same for its options.
type Question struct {
	BaseModel
	CategoryID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Text        string       `gorm:"type:text;not null"`
	Description string       `gorm:"type:text"`
	Type        QuestionType `gorm:"type:varchar(20);not null"`
	IsRequired  bool         `gorm:"not null;default:false"`

	Options []QuestionOption `gorm:"foreignKey:QuestionID"`
}

// QuestionOption only carries meaning for choice questions.
type QuestionOption struct {
	BaseModel
	QuestionID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Label       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Value       string    `gorm:"not null"`
}
