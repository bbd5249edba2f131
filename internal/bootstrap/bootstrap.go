package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/hostel/internal/app/controllers"
	appMigrations "github.com/yigit/hostel/internal/app/migrations"
	appRepos "github.com/yigit/hostel/internal/app/repositories"
	appRoutes "github.com/yigit/hostel/internal/app/routes"
	appServices "github.com/yigit/hostel/internal/app/services"
	"github.com/yigit/hostel/internal/config"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/jobs"
	appMiddleware "github.com/yigit/hostel/internal/middleware"
	pkgAuth "github.com/yigit/hostel/internal/pkg/auth"
	"github.com/yigit/hostel/internal/pkg/filestorage"
	"github.com/yigit/hostel/internal/pkg/helpers"
	"github.com/yigit/hostel/internal/pkg/logger"
	"github.com/yigit/hostel/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Database       *db.PostgresDB
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Scheduler      *jobs.Scheduler
	Clock          clockwork.Clock
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects and ensures the schema. When the server cannot be
// reached the application still starts with an offline handle, and every
// operation reports a connection failure.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) *db.PostgresDB {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database, starting offline")
		return db.Offline()
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Ensuring database schema...")
	if err := appMigrations.NewMigrator(database.Pool).EnsureSchema(ctx); err != nil {
		// Tables that were created stay usable; the rest fail per operation.
		lgr.Error().Err(err).Msg("Database schema is incomplete")
	}

	return database
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Database: database,
		Clock:    clockwork.NewRealClock(),
		Logger:   lgr,
	}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Reports.ExportDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize export storage")
		return nil, fmt.Errorf("failed to initialize export storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 12*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(database, deps.Repos, deps.JWTService, deps.FileStorage, deps.Clock)

	if database.Connected() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := seed.EnsureAdmin(ctx, deps.Services.User, cfg, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to seed admin account, proceeding anyway...")
		}
		cancel()
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	svc := deps.Services
	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(svc.Auth, logger.Component("auth_controller")),
		User:       appControllers.NewUserController(svc.User, logger.Component("user_controller")),
		Room:       appControllers.NewRoomController(svc.Room, logger.Component("room_controller")),
		Student:    appControllers.NewStudentController(svc.Student, logger.Component("student_controller")),
		Payment:    appControllers.NewPaymentController(svc.Payment, logger.Component("payment_controller")),
		Attendance: appControllers.NewAttendanceController(svc.Attendance, logger.Component("attendance_controller")),
		Report:     appControllers.NewReportController(svc.Report, svc.Export, logger.Component("report_controller")),
	}

	if cfg.Reports.SnapshotEnabled {
		deps.Scheduler, err = jobs.NewScheduler(deps.Clock, logger.Component("scheduler"))
		if err != nil {
			return nil, err
		}
		if err := deps.Scheduler.AddDueSnapshot(cfg.Reports.SnapshotCron, svc.Export); err != nil {
			_ = deps.Scheduler.Shutdown()
			return nil, err
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.LoggerMiddleware())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
