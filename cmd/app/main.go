package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"spotcheck/cmd/fx/account_fx"
	"spotcheck/cmd/fx/checkin_fx"
	"spotcheck/cmd/fx/db_fx"
	"spotcheck/cmd/fx/demo_fx"
	"spotcheck/cmd/fx/spots_fx"
	"spotcheck/cmd/fx/storage_fx"
	"spotcheck/cmd/fx/tourapi_fx"
	"spotcheck/internal/api/controllers"
	"spotcheck/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		storage_fx.Module,
		demo_fx.Module,
		tourapi_fx.Module,
		spots_fx.Module,
		checkin_fx.Module,
		account_fx.Module,

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
				if port == "" {
					port = "8080"
				}
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
	checkInController *controllers.CheckInController,
	spotsController *controllers.SpotsController,
	accountController *controllers.AccountController,
	demoController *controllers.DemoController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(middleware.AllowedOriginsFromEnv()))

	RegisterRoutes(r, checkInController, spotsController, accountController, demoController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	checkInController *controllers.CheckInController,
	spotsController *controllers.SpotsController,
	accountController *controllers.AccountController,
	demoController *controllers.DemoController) {

	spotsGroup := r.Group("/spots")
	spotsGroup.GET("", spotsController.ListSpots)
	spotsGroup.GET("/:id", spotsController.GetSpotById)

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.JWTAuthMiddleware())
	apiGroup.POST("/checkin", checkInController.Submit)
	apiGroup.GET("/checkin/check", checkInController.Check)
	apiGroup.GET("/demo", demoController.State)
	apiGroup.POST("/demo/toggle", demoController.Toggle)
	apiGroup.PUT("/demo/bypass", demoController.SetBypass)
}
