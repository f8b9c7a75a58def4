package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	"github.com/masa-png/gadget-concierge-sub001/internal/services"
)

var Module = fx.Provide(
	provideProfileRepo, provideAccountService)

func provideProfileRepo(db *gorm.DB) repositories.ProfileRepository {
	return repositories.NewProfileRepository(db)
}

func provideAccountService(profileRepo repositories.ProfileRepository, logger *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(profileRepo, logger)
}
