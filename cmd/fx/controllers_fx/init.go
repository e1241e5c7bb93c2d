package controllers_fx

import (
	"go.uber.org/fx"

	"sitesmith/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPackageController),
	fx.Provide(controllers.NewCreditController),
	fx.Provide(controllers.NewPurchaseController),
	fx.Provide(controllers.NewBuilderController))
