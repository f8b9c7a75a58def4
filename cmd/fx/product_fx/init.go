package product_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	"github.com/masa-png/gadget-concierge-sub001/internal/services"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

var Module = fx.Provide(
	provideProductRepo, provideProductEmbeddingRepo, provideProductService)

func provideProductRepo(db *gorm.DB) repositories.ProductRepository {
	return repositories.NewProductRepository(db)
}

func provideProductEmbeddingRepo(db *gorm.DB) repositories.ProductEmbeddingRepository {
	return repositories.NewProductEmbeddingRepository(db)
}

func provideProductService(
	productRepo repositories.ProductRepository,
	embeddingRepo repositories.ProductEmbeddingRepository,
	categoryRepo repositories.CategoryRepository,
	aiClient utils.GenerationClientInterface,
	logger *zap.Logger,
) services.ProductServiceInterface {
	return services.NewProductService(productRepo, embeddingRepo, categoryRepo, aiClient, logger)
}
