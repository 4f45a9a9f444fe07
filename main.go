package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	v1 "github.com/grantdesk-api/api/v1"
	"github.com/grantdesk-api/ai"
	"github.com/grantdesk-api/config"
	"github.com/grantdesk-api/database"
	"github.com/grantdesk-api/jobs"
	"github.com/grantdesk-api/mailer"
	"github.com/grantdesk-api/repositories"
	"github.com/grantdesk-api/routes"
	"github.com/grantdesk-api/services"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	agents, err := config.LoadAgents(cfg.AI.AgentsFile)
	if err != nil {
		klog.Fatalf("Failed to load agent prompts: %v", err)
	}

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL, cfg.GinMode)
	if err != nil {
		klog.Fatalf("Failed to initialize database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		klog.Fatalf("Failed to get database handle: %v", err)
	}
	defer sqlDB.Close()

	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	ideaRepo := repositories.NewIdeaRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	completer, err := ai.New(cfg.AI, agents)
	if err != nil {
		klog.Fatalf("Failed to initialize AI provider: %v", err)
	}

	tokens, err := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpire)
	if err != nil {
		klog.Fatalf("Failed to initialize token issuer: %v", err)
	}

	var resetMailer mailer.Mailer
	if m := mailer.NewSMTPMailer(cfg.SMTP); m != nil {
		resetMailer = m
	} else {
		klog.Warning("SMTP not configured, reset tokens are returned in the API response")
	}

	scores := services.ScorePolicy{
		IdeaDefault:        cfg.AI.IdeaScore,
		ApplicationDefault: cfg.AI.ApplicationScore,
		ParseFromResponse:  cfg.AI.ParseScores,
	}
	lifecycle := services.Lifecycle{AllowReopen: cfg.Lifecycle.AllowReopen}

	deps := v1.Dependencies{
		Auth:         services.NewAuthService(userRepo, tokens, resetMailer, cfg.ResetTokenTTL),
		Users:        services.NewUserService(userRepo),
		Projects:     services.NewProjectService(projectRepo, userRepo),
		Ideas:        services.NewIdeaService(ideaRepo, projectRepo, completer, scores, lifecycle),
		Applications: services.NewApplicationService(applicationRepo, ideaRepo, projectRepo, completer, scores, lifecycle, agents.Review),
		AIServices:   ai.AvailableServices(cfg.AI),
		DB:           sqlDB,
		CookieSecure: cfg.CookieSecure,
	}

	// Periodic maintenance
	cronManager := jobs.NewManager()
	if _, err := cronManager.AddResetTokenPurge(cfg.ResetTokenPurgeSpec, userRepo); err != nil {
		klog.Fatalf("Failed to schedule reset token purge: %v", err)
	}
	cronManager.Start()

	// Initialize router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// CORS configuration
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		klog.Infof("Grantdesk API starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	klog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		klog.Errorf("Server forced to shutdown: %v", err)
	}
	<-cronManager.Stop().Done()
	klog.Info("Server exited")
}
