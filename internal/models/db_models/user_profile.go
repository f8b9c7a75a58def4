package db_models

type UserProfile struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string

	// Lifetime counters bumped on session completion and on the first
	// successful recommendation write for a session.
	AnsweredQuestionCount int64 `gorm:"not null;default:0"`
	RecommendationCount   int64 `gorm:"not null;default:0"`

	Sessions []QuestionnaireSession `gorm:"foreignKey:UserProfileID"`
	History  []UserHistory          `gorm:"foreignKey:UserProfileID"`
}
