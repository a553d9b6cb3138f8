package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"TASKS_COLLECTION",
		"GROUPS_COLLECTION",
		"SESSIONS_COLLECTION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
}

// initRedis wires the optional Redis-backed services. Everything here
// degrades gracefully when REDIS_URL is unset.
func initRedis(cfg config.ServerConfig) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, running without session cache, token blacklist, and dashboard cache")
		return
	}

	sessionCache, err := services.NewSessionCache(redisURL)
	if err != nil {
		log.Printf("Session cache unavailable: %v", err)
	} else {
		services.GlobalSessionCache = sessionCache
	}

	blacklist, err := services.NewTokenBlacklist(redisURL)
	if err != nil {
		log.Printf("Token blacklist unavailable: %v", err)
	} else {
		services.TokenBlacklist = blacklist
	}

	dashboardCache, err := services.NewDashboardCache(redisURL, cfg.DashboardCacheTTL)
	if err != nil {
		log.Printf("Dashboard cache unavailable: %v", err)
	} else {
		services.GlobalDashboardCache = dashboardCache
	}

	notifier, err := services.NewNotifier(redisURL, cfg.NotificationWindow)
	if err != nil {
		log.Printf("Notifier unavailable: %v", err)
	} else {
		services.GlobalNotifier = notifier
	}
}

func setupRouter(cfg config.ServerConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))

	// Repositories
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)
	groupsRepo := repository.GetGroupsRepo(utils.MongoClient)

	// Services
	taskService := usecase.NewTaskService(tasksRepo)
	groupService := usecase.NewGroupService(groupsRepo, tasksRepo)
	statsService := usecase.NewStatsService(cfg.DashboardTimezone)

	// Handlers
	taskHandler := handler.NewTaskHandler(taskService)
	groupHandler := handler.NewGroupHandler(groupService)
	statsHandler := handler.NewStatsHandler(taskService, statsService, cfg.DashboardTopDays)
	notificationsHandler := handler.NewNotificationsHandler(taskService, cfg.NotificationWindow)

	router.Use(middleware.SessionMiddleware(sessionRepo))

	// Operational endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"cpu_usage": utils.GetCPUUsage(),
			"mongo":     utils.GetMongoMetrics(),
		})
	})

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		auth.Use(middleware.ValidateAuthInput())
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, sessionRepo, cfg.MaxActiveSessions)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		// User management
		user := protected.Group("/user")
		{
			user.GET("/profile", handler.GetUserProfileHandler)
			user.POST("/change-password", handler.ChangePasswordHandler)
			user.POST("/logout", handler.LogoutHandler)
			user.DELETE("/delete", handler.DeleteUserHandler)
		}

		// Session management endpoints
		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		// Task endpoints
		tasks := protected.Group("/tasks")
		{
			tasks.GET("/", taskHandler.GetUserTasks)
			tasks.POST("/", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/toggle", taskHandler.ToggleTaskComplete)

			tasks.GET("/search", taskHandler.SearchTasks)
			tasks.GET("/group", taskHandler.GetTasksByGroup)
			tasks.GET("/important", taskHandler.GetImportantTasks)
			tasks.GET("/upcoming", taskHandler.GetUpcomingTasks)
			tasks.GET("/overdue", taskHandler.GetOverdueTasks)
			tasks.GET("/completed", taskHandler.GetCompletedTasks)
			tasks.GET("/pending", taskHandler.GetPendingTasks)
			tasks.GET("/count", taskHandler.CountUserTasks)
		}

		// Group endpoints
		groups := protected.Group("/groups")
		{
			groups.GET("/", groupHandler.GetUserGroups)
			groups.POST("/", groupHandler.CreateGroup)
			groups.DELETE("/:id", groupHandler.DeleteGroup)
		}

		// Dashboard and notifications
		protected.GET("/dashboard", middleware.CacheControlMiddleware("30"), statsHandler.GetDashboard)
		protected.GET("/notifications/due-soon", notificationsHandler.GetDueSoon)
	}

	return router
}

func main() {
	cfg := config.LoadServerConfig()
	dbCfg := config.LoadDatabaseConfig()

	initRedis(cfg)

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbCfg.DatabaseName)); err != nil {
		log.Printf("Failed to set up indexes: %v", err)
	}

	router := setupRouter(cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	if services.GlobalSessionCache != nil {
		services.GlobalSessionCache.Close()
	}
	if services.TokenBlacklist != nil {
		services.TokenBlacklist.Close()
	}
	if services.GlobalDashboardCache != nil {
		services.GlobalDashboardCache.Close()
	}
	if services.GlobalNotifier != nil {
		services.GlobalNotifier.Close()
	}

	if err := utils.MongoClient.Disconnect(context.Background()); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}

	log.Println("Server stopped")
}
