package session_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	"github.com/masa-png/gadget-concierge-sub001/internal/services"
)

var Module = fx.Provide(
	provideSessionRepo, provideAnswerRepo, provideSessionService)

func provideSessionRepo(db *gorm.DB) repositories.SessionRepository {
	return repositories.NewSessionRepository(db)
}

func provideAnswerRepo(db *gorm.DB) repositories.AnswerRepository {
	return repositories.NewAnswerRepository(db)
}

func provideSessionService(
	sessionRepo repositories.SessionRepository,
	answerRepo repositories.AnswerRepository,
	questionRepo repositories.QuestionRepository,
	categoryRepo repositories.CategoryRepository,
	logger *zap.Logger,
) services.SessionServiceInterface {
	return services.NewSessionService(sessionRepo, answerRepo, questionRepo, categoryRepo, logger)
}
