package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"jobboard/bootstrap"
	"jobboard/configs"
	"jobboard/database"
	"jobboard/internal/handlers"
	"jobboard/internal/middleware"
	"jobboard/internal/repository"
	"jobboard/internal/routes"
	"jobboard/services"
)

func init() {
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}

func main() {
	cfg := configs.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}

	// --- MongoDB Connection ---
	client := database.ConnectMongo(cfg.MongoURI)
	defer database.DisconnectMongo(client)
	db := client.Database(cfg.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := bootstrap.EnsureJobIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	// --- Stores and services ---
	jobStore := repository.NewMongoJobStore(db)
	userStore := repository.NewMongoUserStore(db)
	jobSvc := services.NewJobService(jobStore, userStore)
	authSvc := services.NewAuthService(userStore, []byte(cfg.JWTSecret))

	// --- Fiber App Setup ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Use(middleware.JWT([]byte(cfg.JWTSecret)))
	app.Use(middleware.LoadViewer(userStore))

	routes.Register(app, routes.Deps{
		Jobs: handlers.NewJobHandler(jobSvc),
		Auth: handlers.NewAuthHandler(authSvc),
	})

	log.Printf("listening at http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
