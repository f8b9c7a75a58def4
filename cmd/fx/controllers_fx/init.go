package controllers_fx

import (
	"go.uber.org/fx"

	"github.com/masa-png/gadget-concierge-sub001/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewSessionController),
	fx.Provide(controllers.NewRecommendationController),
	fx.Provide(controllers.NewProductController))
