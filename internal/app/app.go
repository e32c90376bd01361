package app

import (
	"fmt"

	"github.com/habitkit/habitkit/internal/config"
	"github.com/habitkit/habitkit/internal/db"
	"github.com/habitkit/habitkit/internal/repository"
	"github.com/habitkit/habitkit/internal/service"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	UserRepository    repository.UserRepository
	AuthService       *service.AuthService
	HabitService      *service.HabitService
	CompletionService *service.CompletionService
	StreakService     *service.StreakService
	HistoryService    *service.HistoryService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	habitRepository := repository.NewHabitRepository(database)
	completionRepository := repository.NewCompletionRepository(database)
	historyRepository := repository.NewHistoryRepository(database)

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry)
	habitService := service.NewHabitService(habitRepository)
	streakService := service.NewStreakService(completionRepository, habitRepository)
	historyService := service.NewHistoryService(historyRepository)
	completionService := service.NewCompletionService(habitRepository, completionRepository, streakService, historyService)

	return &App{
		Cfg:               cfg,
		DB:                database,
		UserRepository:    userRepository,
		AuthService:       authService,
		HabitService:      habitService,
		CompletionService: completionService,
		StreakService:     streakService,
		HistoryService:    historyService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
