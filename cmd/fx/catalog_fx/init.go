package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	"github.com/masa-png/gadget-concierge-sub001/internal/services"
)

var Module = fx.Provide(
	provideCategoryRepo, provideQuestionRepo, provideCatalogService)

func provideCategoryRepo(db *gorm.DB) repositories.CategoryRepository {
	return repositories.NewCategoryRepository(db)
}

func provideQuestionRepo(db *gorm.DB) repositories.QuestionRepository {
	return repositories.NewQuestionRepository(db)
}

func provideCatalogService(
	categoryRepo repositories.CategoryRepository,
	questionRepo repositories.QuestionRepository,
) services.CatalogServiceInterface {
	return services.NewCatalogService(categoryRepo, questionRepo)
}
