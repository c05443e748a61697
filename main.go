package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"GEMINI_API_KEY",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	dbConfig := config.LoadDatabaseConfig()

	categories, err := config.LoadCategoryCatalog()
	if err != nil {
		log.Fatalf("Failed to load category catalog: %v", err)
	}
	levels, err := config.LoadLevelThresholds()
	if err != nil {
		log.Fatalf("Failed to load level table: %v", err)
	}

	// The cache is optional; the engine works against Mongo alone.
	var cache *services.ProgressCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewProgressCache(redisURL)
		if err != nil {
			log.Printf("Progress cache disabled: %v", err)
			cache = nil
		}
	}

	// Repositories
	progressRepo := repository.GetProgressRepo(utils.MongoClient)
	progressRepo.Cache = cache
	catalogRepo := repository.GetCatalogRepo(utils.MongoClient)

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Printf("Failed to set up indexes: %v", err)
	}

	// Outbound evaluator with its serializing rate limiter
	evaluator, err := services.NewGenAIEvaluator(
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("GEMINI_MODEL"),
		categories,
	)
	if err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Failed to create task evaluator: %v", err)
	}
	limiter := services.NewRateLimiter(utils.GetEnvAsDuration("EVALUATOR_MIN_INTERVAL", 2*time.Second))
	detector := services.NewDuplicateDetector()

	// Engines
	leveling := usecase.NewLevelingService(progressRepo, levels)
	leveling.NotifyAward(middleware.TrackXPAward)
	taskService := usecase.NewTaskService(progressRepo, catalogRepo, evaluator, limiter, detector, leveling)
	habitService := usecase.NewHabitService(progressRepo, detector, leveling)
	challengeService := usecase.NewChallengeService(progressRepo, catalogRepo, leveling)
	goalService := usecase.NewGoalService(progressRepo)
	progressService := usecase.NewProgressService(progressRepo)

	// Handlers
	taskHandler := handler.NewTaskHandler(taskService, habitService)
	habitHandler := handler.NewHabitHandler(habitService, goalService, catalogRepo)
	challengeHandler := handler.NewChallengeHandler(challengeService)
	goalHandler := handler.NewGoalHandler(goalService)
	progressHandler := handler.NewProgressHandler(progressService)
	healthHandler := handler.NewHealthHandler(cache)

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20)) // 1 MB

	// Operational endpoints
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		tasks := protected.Group("/tasks")
		{
			tasks.GET("/active", taskHandler.GetActiveTasks)
			tasks.POST("/", taskHandler.CreateTask)
			tasks.POST("/:id/assign", taskHandler.AssignTask)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		habits := protected.Group("/habits")
		{
			habits.GET("/", habitHandler.ListHabits)
			habits.POST("/", habitHandler.CreateHabit)
			habits.POST("/sweep", habitHandler.Sweep)
			habits.POST("/task/:taskId/complete", habitHandler.CompleteHabit)
			habits.DELETE("/:id", habitHandler.DeleteHabit)
		}

		challenges := protected.Group("/challenges")
		{
			challenges.GET("/templates", challengeHandler.ListTemplates)
			challenges.GET("/", challengeHandler.ListActive)
			challenges.GET("/today", challengeHandler.GetTodaysTasks)
			challenges.GET("/failed", challengeHandler.GetFailed)
			challenges.POST("/:id/join", challengeHandler.JoinChallenge)
			challenges.POST("/:id/tasks/:taskId/complete", challengeHandler.CompleteTask)
			challenges.POST("/:id/reset", challengeHandler.ResetChallenge)
			challenges.POST("/:id/quit", challengeHandler.QuitChallenge)
			challenges.POST("/:id/complete", challengeHandler.CompleteChallenge)
		}

		goals := protected.Group("/goals")
		{
			goals.POST("/", goalHandler.CreateGoal)
			goals.GET("/", goalHandler.GetGoalsByTimeframe)
			goals.PUT("/:id/progress", goalHandler.UpdateProgress)
			goals.POST("/:id/reflection", goalHandler.AddReflection)
			goals.POST("/:id/archive", goalHandler.ArchiveGoal)
			goals.DELETE("/:id", goalHandler.DeleteGoal)
		}

		progress := protected.Group("/progress")
		{
			progress.GET("/", progressHandler.GetProgress)
			progress.GET("/stats", progressHandler.GetStats)
		}
	}

	return router
}

func main() {
	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
