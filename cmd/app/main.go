package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/masa-png/gadget-concierge-sub001/cmd/fx/account_fx"
	"github.com/masa-png/gadget-concierge-sub001/cmd/fx/catalog_fx"
	"github.com/masa-png/gadget-concierge-sub001/cmd/fx/controllers_fx"
	"github.com/masa-png/gadget-concierge-sub001/cmd/fx/db_fx"
	"github.com/masa-png/gadget-concierge-sub001/cmd/fx/memcache_fx"
	"github.com/masa-png/gadget-concierge-sub001/cmd/fx/product_fx"
	"github.com/masa-png/gadget-concierge-sub001/cmd/fx/recommendation_fx"
	"github.com/masa-png/gadget-concierge-sub001/cmd/fx/session_fx"
	"github.com/masa-png/gadget-concierge-sub001/internal/api/controllers"
	mem "github.com/masa-png/gadget-concierge-sub001/pkg/memcache"
	"github.com/masa-png/gadget-concierge-sub001/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		catalog_fx.Module,
		session_fx.Module,
		recommendation_fx.Module,
		product_fx.Module,
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
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
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
	limiter mem.KeyedLimiter,
	accountController *controllers.AccountController,
	catalogController *controllers.CatalogController,
	sessionController *controllers.SessionController,
	recommendationController *controllers.RecommendationController,
	productController *controllers.ProductController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware(limiter))

	RegisterRoutes(r,
		accountController,
		catalogController,
		sessionController,
		recommendationController,
		productController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	catalogController *controllers.CatalogController,
	sessionController *controllers.SessionController,
	recommendationController *controllers.RecommendationController,
	productController *controllers.ProductController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.GET("/me", middleware.JWTAuthMiddleware(), accountController.GetProfile)

	categories := r.Group("/categories")
	categories.GET("", catalogController.ListCategories)
	categories.GET("/:id/children", catalogController.ListChildren)
	categories.GET("/:id/questions", catalogController.ListQuestions)
	categories.GET("/:id/products", productController.ListByCategory)

	products := r.Group("/products")
	products.GET("/:id", productController.GetProduct)
	products.POST("/search", productController.SearchProducts)
	products.POST("/sync", middleware.JWTAuthMiddleware(), productController.SyncProduct)

	sessions := r.Group("/sessions", middleware.JWTAuthMiddleware())
	sessions.POST("", sessionController.StartSession)
	sessions.GET("", sessionController.ListSessions)
	sessions.GET("/:id", sessionController.GetSession)
	sessions.DELETE("/:id", sessionController.DeleteSession)
	sessions.POST("/:id/answers", sessionController.SubmitAnswer)
	sessions.GET("/:id/answers", sessionController.ListAnswers)
	sessions.POST("/:id/answers/batch", sessionController.SubmitAnswerBatch)
	sessions.GET("/:id/progress", sessionController.GetProgress)
	sessions.POST("/:id/complete", sessionController.CompleteSession)
	sessions.POST("/:id/abandon", sessionController.AbandonSession)
	sessions.POST("/:id/resume", sessionController.ResumeSession)
	sessions.POST("/:id/recommendations", recommendationController.Generate)
	sessions.GET("/:id/recommendations", recommendationController.ListBySession)
}
