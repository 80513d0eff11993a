package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medisync/config"
	"medisync/internal/controller"
	deliveryHttp "medisync/internal/delivery/http"
	"medisync/internal/delivery/http/handler"
	"medisync/internal/delivery/http/middleware"
	"medisync/internal/gateway"
	"medisync/internal/infrastructure/cache"
	"medisync/internal/infrastructure/database"
	"medisync/internal/repository"
	"medisync/internal/service"
	"medisync/internal/session"
	"medisync/internal/usecase"
	"medisync/pkg/jwt"
	"medisync/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply pending schema migrations
	if err := database.RunMigrations(db, cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize session resolver
	resolver := session.NewResolver(jwtService, redisClient, log)

	// Initialize gateway client; upstream calls forward the caller's token
	gatewayClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout,
		middleware.GetRawTokenFromContext, log)

	// Initialize services
	auditService := service.NewAuditService(log, auditRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, profileRepo, jwtService, redisClient, resolver)

	// Initialize view controllers, one per session
	adminControllers := func(sess *session.Session) *controller.AdminController {
		return controller.NewAdminController(log, gatewayClient, profileRepo, doctorRepo, ticketRepo, invoiceRepo)
	}
	frontOfficeControllers := func(sess *session.Session) *controller.FrontOfficeController {
		return controller.NewFrontOfficeController(log, gatewayClient, profileRepo, doctorRepo, ticketRepo, auditService, sess.UserID)
	}
	doctorControllers := func(sess *session.Session) *controller.DoctorController {
		return controller.NewDoctorController(log, gatewayClient, ticketRepo, auditService, sess.UserID)
	}
	nurseControllers := func(sess *session.Session) *controller.NurseController {
		return controller.NewNurseController(log, profileRepo, ticketRepo, sess.UserID)
	}
	pharmacyControllers := func(sess *session.Session) *controller.PharmacyController {
		return controller.NewPharmacyController(log, prescriptionRepo, medicineRepo, ticketRepo, invoiceRepo, auditService, sess.UserID)
	}
	patientControllers := func(sess *session.Session) *controller.PatientController {
		return controller.NewPatientController(log, gatewayClient, ticketRepo, invoiceRepo, sess.UserID)
	}

	viewRouter := controller.NewRouter(
		func(sess *session.Session) controller.View { return adminControllers(sess) },
		func(sess *session.Session) controller.View { return frontOfficeControllers(sess) },
		func(sess *session.Session) controller.View { return doctorControllers(sess) },
		func(sess *session.Session) controller.View { return nurseControllers(sess) },
		func(sess *session.Session) controller.View { return pharmacyControllers(sess) },
		func(sess *session.Session) controller.View { return patientControllers(sess) },
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, resolver, customValidator)
	dashboardHandler := handler.NewDashboardHandler(viewRouter)
	adminHandler := handler.NewAdminHandler(adminControllers)
	frontOfficeHandler := handler.NewFrontOfficeHandler(frontOfficeControllers, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorControllers, customValidator)
	nurseHandler := handler.NewNurseHandler(nurseControllers)
	pharmacyHandler := handler.NewPharmacyHandler(pharmacyControllers)
	patientHandler := handler.NewPatientHandler(patientControllers, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(resolver)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler, dashboardHandler, adminHandler, frontOfficeHandler,
		doctorHandler, nurseHandler, pharmacyHandler, patientHandler,
		authMiddleware, corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
