package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"horizon/horizon-app/internal/ai"
	"horizon/horizon-app/internal/api"
	"horizon/horizon-app/internal/config"
	"horizon/horizon-app/internal/insight"
	"horizon/horizon-app/internal/repository/mongo"
	"horizon/horizon-app/internal/service"
	"horizon/horizon-app/internal/storage"
)

func main() {
	log.Println("Starting Horizon Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureGoalIndexes(ctx, appDB.Collection("goals"))
		mongo.EnsureActivityLogIndexes(ctx, appDB.Collection("activity_logs"))
		mongo.EnsurePersonIndexes(ctx, appDB.Collection("people"))
		mongo.EnsureImportantDateIndexes(ctx, appDB.Collection("important_dates"))
		mongo.EnsureTodoIndexes(ctx, appDB.Collection("todos"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize AI Client ---
	var aiClient *ai.Client
	if cfg.AI.APIKey != "" && cfg.AI.GatewayURL != "" {
		aiClient = ai.NewClient(cfg.AI)
		log.Println("AI gateway client initialized.")
	} else {
		log.Println("AI gateway not configured; assistant features disabled.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	activityRepo := mongo.NewMongoActivityLogRepository(appDB)
	personRepo := mongo.NewMongoPersonRepository(appDB)
	dateRepo := mongo.NewMongoImportantDateRepository(appDB)
	todoRepo := mongo.NewMongoTodoRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	clock := insight.SystemClock()
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	goalService := service.NewGoalService(goalRepo, activityRepo, personRepo, clock)
	personService := service.NewPersonService(personRepo, dateRepo, fileStorage, clock)
	dateService := service.NewDateService(dateRepo, personRepo, clock)
	activityService := service.NewActivityService(activityRepo, personRepo, clock)
	todoService := service.NewTodoService(todoRepo, aiClient)
	insightService := service.NewInsightService(activityRepo, personRepo, goalRepo, clock)
	assistantService := service.NewAssistantService(personRepo, dateRepo, userRepo, aiClient, clock)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, goalService, personService, dateService,
		activityService, todoService, insightService, assistantService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
