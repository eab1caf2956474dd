package main

import (
	"os"
	"path/filepath"

	"recruiting-crm/internal/handler"
	"recruiting-crm/internal/middleware"
	"recruiting-crm/pkg/config"
	"recruiting-crm/pkg/database"
	"recruiting-crm/pkg/jwtutil"
	"recruiting-crm/pkg/logger"
	"recruiting-crm/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting recruiting CRM service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Seed default reference rows and demo accounts when absent
	if err := database.Seed(database.GetDB()); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	// Initialize session token utility
	jwtutil.Initialize(&cfg.JWT)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)
	e.POST("/auth/login", handler.Login)

	// Everything else requires a valid session token
	api := e.Group("", middleware.AuthMiddleware)
	api.GET("/auth/me", handler.Me)

	api.GET("/clients", handler.ListClients)
	api.GET("/recruiters", handler.ListRecruiters)
	api.GET("/vacancies", handler.ListVacancies)
	api.GET("/candidates", handler.ListCandidates)
	api.POST("/candidates", handler.CreateCandidate)

	api.POST("/applications", handler.CreateApplication)
	api.PATCH("/applications/:id", handler.UpdateApplication)
	api.DELETE("/applications/:id", handler.DeleteApplication)

	api.GET("/applications/:id/payments", handler.ListPayments)
	api.POST("/applications/:id/payments", handler.AddPayment)
	api.DELETE("/payments/:id", handler.DeletePayment)

	api.GET("/pipeline", handler.Pipeline)
	api.GET("/reports/earnings", handler.Earnings)

	// Admin-only management routes
	admin := api.Group("", middleware.RequireAdmin)
	admin.GET("/users", handler.ListUsers)
	admin.POST("/users", handler.CreateUser)
	admin.PATCH("/users/:id", handler.UpdateUser)
	admin.DELETE("/users/:id", handler.DeleteUser)

	admin.POST("/clients", handler.CreateClient)
	admin.PATCH("/clients/:id", handler.UpdateClient)
	admin.DELETE("/clients/:id", handler.DeleteClient)

	admin.POST("/recruiters", handler.CreateRecruiter)
	admin.PATCH("/recruiters/:id", handler.UpdateRecruiter)
	admin.DELETE("/recruiters/:id", handler.DeleteRecruiter)

	admin.POST("/vacancies", handler.CreateVacancy)
	admin.PATCH("/vacancies/:id", handler.UpdateVacancy)
	admin.DELETE("/vacancies/:id", handler.DeleteVacancy)

	// Serve the built frontend when present
	mountFrontend(e, cfg.Server.FrontendDir, log)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// mountFrontend serves the SPA build output when the directory exists.
func mountFrontend(e *echo.Echo, dir string, log *zap.Logger) {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		log.Info("Frontend build not found, serving API only", zap.String("dir", dir))
		return
	}
	e.Static("/assets", filepath.Join(dir, "assets"))
	e.File("/", index)
	log.Info("Serving frontend", zap.String("dir", dir))
}
