package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"church_membership/internal/config"
	"church_membership/internal/handler"
	"church_membership/internal/middleware"
	"church_membership/internal/repository"
	"church_membership/internal/service"
	"church_membership/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sessionTokenExpiry = 7 * 24 * time.Hour
	// Fallback only; any real deployment must set JWT_SECRET_KEY.
	insecureDefaultSecret = "insecure-dev-secret-change-me"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		jwtSecret = insecureDefaultSecret
		log.Println("WARNING: JWT_SECRET_KEY not set, using insecure default secret")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	production := os.Getenv("APP_ENV") == "production"

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, sessionTokenExpiry)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	attendanceRepo := repository.NewAttendanceRepository(dbPool)
	prayerRequestRepo := repository.NewPrayerRequestRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil)
	userService := service.NewUserService(userRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo)
	prayerRequestService := service.NewPrayerRequestService(prayerRequestRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, production)
	userHandler := handler.NewUserHandler(userService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	prayerRequestHandler := handler.NewPrayerRequestHandler(prayerRequestService)

	// --- Setup Gin Router ---
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	sessionMW := middleware.SessionAuthMiddleware(authService)

	// --- Register Routes ---
	root := router.Group("")
	authHandler.RegisterAuthRoutes(root)
	userHandler.RegisterUserRoutes(root, sessionMW)
	attendanceHandler.RegisterAttendanceRoutes(root)
	prayerRequestHandler.RegisterPrayerRequestRoutes(root, sessionMW)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
