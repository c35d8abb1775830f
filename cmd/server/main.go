package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "focusdo/docs" // swagger docs

	"focusdo/internal/auth"
	"focusdo/internal/cache"
	"focusdo/internal/config"
	"focusdo/internal/db"
	"focusdo/internal/handler"
	"focusdo/internal/model"
	"focusdo/internal/repository"
	"focusdo/internal/router"
	"focusdo/internal/service"
)

// @title Todo + Time Manager API
// @version 1.1
// @description Personal task and focus-time manager with JWT authentication.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments export variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Todo{},
		&model.Step{},
		&model.Pomodoro{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	tokenService, err := auth.NewTokenService(cfg.SecretKey, cfg.Algorithm, cfg.TokenTTLMinutes)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)
	pomodoroRepo := repository.NewPomodoroRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, cfg.DemoEnabled)
	todoService := service.NewTodoService(todoRepo)
	pomodoroService := service.NewPomodoroService(pomodoroRepo, todoRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	pomodoroHandler := handler.NewPomodoroHandler(pomodoroService)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		cacheClient,
		authHandler,
		todoHandler,
		pomodoroHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
