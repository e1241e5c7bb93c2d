package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"sitesmith/cmd/fx/account_fx"
	"sitesmith/cmd/fx/catalog_fx"
	"sitesmith/cmd/fx/controllers_fx"
	"sitesmith/cmd/fx/credits_fx"
	"sitesmith/cmd/fx/db_fx"
	"sitesmith/cmd/fx/mail_fx"
	"sitesmith/cmd/fx/purchase_fx"
	"sitesmith/internal/api/controllers"
	"sitesmith/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		catalog_fx.Module,
		credits_fx.Module,
		purchase_fx.Module,
		mail_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	packageController *controllers.PackageController,
	creditController *controllers.CreditController,
	purchaseController *controllers.PurchaseController,
	builderController *controllers.BuilderController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, packageController, creditController, purchaseController, builderController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	packageController *controllers.PackageController,
	creditController *controllers.CreditController,
	purchaseController *controllers.PurchaseController,
	builderController *controllers.BuilderController) {

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)

	packagesGroup := r.Group("/packages")
	packagesGroup.GET("", packageController.ListPackages)

	purchasesGroup := r.Group("/purchases")
	purchasesGroup.Use(middleware.JWTAuthMiddleware())
	purchasesGroup.POST("", purchaseController.CreatePurchase)

	creditsGroup := r.Group("/credits")
	creditsGroup.Use(middleware.JWTAuthMiddleware())
	creditsGroup.GET("/balance", creditController.GetBalance)
	creditsGroup.GET("/expiring", creditController.GetExpiring)
	creditsGroup.GET("/history", creditController.GetHistory)
	creditsGroup.POST("/notify-expiring", creditController.NotifyExpiring)

	builderGroup := r.Group("/builder")
	builderGroup.Use(middleware.JWTAuthMiddleware())
	builderGroup.POST("/actions", builderController.PerformAction)
}
