package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard-api/internal/config"
	"taskboard-api/internal/database"
	"taskboard-api/internal/handlers"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/services"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	gin.SetMode(cfg.Server.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalf("connect database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	tokens := services.NewTokenIssuer(
		[]byte(cfg.Auth.JWTSecret),
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo)
	userService := services.NewUserService(userRepo, taskRepo)

	var suggestionProvider services.SuggestionProvider
	if cfg.AI.APIKey != "" {
		suggestionProvider = services.NewAIService(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
	} else {
		logger.Warn("AI api key not configured, subtask suggestions disabled")
	}

	authHandler := handlers.NewAuthHandler(authService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	aiHandler := handlers.NewAIHandler(suggestionProvider, logger)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(tokens))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/all", middleware.RequireAdmin(), taskHandler.ListAllTasks)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	ai := r.Group("/ai")
	ai.Use(middleware.RequireAuth(tokens))
	{
		ai.POST("/generate-subtasks", aiHandler.GenerateSubtasks)
	}

	users := r.Group("/users")
	users.Use(middleware.RequireAuth(tokens), middleware.RequireAdmin())
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/:userId/tasks", userHandler.ListUserTasks)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
