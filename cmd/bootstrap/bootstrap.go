package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hospital-management-api/config"
	"hospital-management-api/internal/delivery/dto"
	deliveryHttp "hospital-management-api/internal/delivery/http"
	"hospital-management-api/internal/delivery/http/handler"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/infrastructure/cache"
	"hospital-management-api/internal/infrastructure/database"
	"hospital-management-api/internal/infrastructure/monitoring"
	"hospital-management-api/internal/repository"
	"hospital-management-api/internal/service"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/jwt"
	"hospital-management-api/pkg/validator"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	sentryEnabled bool
}

// Load reads the configuration and builds the logger every command shares.
func Load() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, setupLogger(cfg.App), nil
}

// setupLogger configures a JSON logrus logger at LOG_LEVEL
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// New creates an App with every connection open, the schema migrated and the
// number sequences synced. The HTTP server is built but not started.
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	sentryEnabled, err := monitoring.InitSentry(cfg)
	if err != nil {
		log.Warnf("Failed to initialize Sentry, continuing without it: %+v", err)
	}
	app.sentryEnabled = sentryEnabled

	if err := RunMigrations(cfg, log, MigrateUp); err != nil {
		return nil, err
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg, log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	metrics := monitoring.NewMetrics()
	deps := newDependencies(cfg, log, db, redisClient, metrics)

	if err := verifyRoles(ctx, db, deps.roleRepo); err != nil {
		app.Close()
		return nil, err
	}

	if err := deps.sequences.SyncOnStartup(ctx, map[string]service.SequenceSource{
		service.SequenceInvoice: func(ctx context.Context) (int64, error) {
			return deps.invoiceRepo.MaxNumber(ctx, db)
		},
		service.SequenceStaff: func(ctx context.Context) (int64, error) {
			return deps.staffRepo.MaxCodeNumber(ctx, db)
		},
	}); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to sync number sequences: %w", err)
	}

	app.Server = initializeServer(cfg, log, deps, metrics, db, redisClient)
	return app, nil
}

// dependencies is the wired repository, service and usecase graph.
type dependencies struct {
	validator *validator.CustomValidator

	roleRepo    domainRepo.RoleRepository
	invoiceRepo domainRepo.InvoiceRepository
	staffRepo   domainRepo.StaffProfileRepository
	sequences   *service.RedisSequenceService

	auth         usecase.AuthUsecase
	patients     usecase.PatientUsecase
	staff        usecase.StaffUsecase
	appointments usecase.AppointmentUsecase
	invoices     usecase.InvoiceUsecase
	records      usecase.MedicalRecordUsecase
	auditLogs    usecase.AuditLogUsecase
}

// newDependencies wires every layer. redisClient and metrics may be nil for
// commands that never touch tokens, sequences or metrics.
func newDependencies(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, metrics *monitoring.Metrics) *dependencies {
	jwtService := jwt.NewJWTService(cfg.JWT)
	tx := repository.NewTxManager(db)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	patientRepo := repository.NewPatientProfileRepository()
	staffRepo := repository.NewStaffProfileRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	invoiceRepo := repository.NewInvoiceRepository()
	recordRepo := repository.NewMedicalRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	tokenStore := service.NewTokenStore(redisClient, log)
	sequences := service.NewSequenceService(redisClient, log)

	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}

	return &dependencies{
		validator:   validator.NewValidator(),
		roleRepo:    roleRepo,
		invoiceRepo: invoiceRepo,
		staffRepo:   staffRepo,
		sequences:   sequences,

		auth:         usecase.NewAuthUsecase(tx, log, userRepo, roleRepo, patientRepo, staffRepo, jwtService, tokenStore, sequences, auditService),
		patients:     usecase.NewPatientUsecase(tx, log, userRepo, roleRepo, patientRepo, auditService),
		staff:        usecase.NewStaffUsecase(tx, log, userRepo, roleRepo, staffRepo, sequences, auditService),
		appointments: usecase.NewAppointmentUsecase(tx, log, appointmentRepo, patientRepo, staffRepo, auditService, metrics.SchedulingConflicts),
		invoices:     usecase.NewInvoiceUsecase(tx, log, invoiceRepo, patientRepo, sequences, auditService),
		records:      usecase.NewMedicalRecordUsecase(tx, log, recordRepo, patientRepo, staffRepo, auditService),
		auditLogs:    usecase.NewAuditLogUsecase(tx, log, auditLogRepo),
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, deps *dependencies, metrics *monitoring.Metrics, db *gorm.DB, redisClient *redis.Client) *http.Server {
	v := deps.validator

	router := deliveryHttp.NewRouter(deliveryHttp.RouterDeps{
		Log:       log,
		Metrics:   metrics,
		StaticDir: cfg.App.StaticDir,
		HealthHandler: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		}),
		AuthHandler:          handler.NewAuthHandler(deps.auth, v, log),
		PatientHandler:       handler.NewPatientHandler(deps.patients, deps.appointments, deps.invoices, deps.records, v, log),
		StaffHandler:         handler.NewStaffHandler(deps.staff, deps.appointments, v, log),
		AppointmentHandler:   handler.NewAppointmentHandler(deps.appointments, v, log),
		BillingHandler:       handler.NewBillingHandler(deps.invoices, v, log),
		MedicalRecordHandler: handler.NewMedicalRecordHandler(deps.records, v, log),
		AuditLogHandler:      handler.NewAuditLogHandler(deps.auditLogs, v, log),
		AuthMiddleware:       middleware.NewAuthMiddleware(deps.auth, log),
		CORSMiddleware:       middleware.NewCORSMiddleware(cfg.App.AllowedOrigins),
	})

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM
func (app *App) Run() error {
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		app.Close()
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	return app.shutdown()
}

func (app *App) shutdown() error {
	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	err := app.Server.Shutdown(ctx)
	if err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return err
}

// Close closes all connections and flushes pending Sentry events
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				app.Log.Warnf("Failed to close database: %+v", err)
			}
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis: %+v", err)
		}
	}

	if app.sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

// Migration directions accepted by RunMigrations.
const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

// RunMigrations applies (up) or rolls back one step of (down) the embedded schema migrations.
func RunMigrations(cfg *config.Config, log *logrus.Logger, direction string) error {
	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Warnf("Failed to close migrator: %+v", err)
		}
	}()

	switch direction {
	case MigrateUp:
		return migrator.Up()
	case MigrateDown:
		return migrator.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
}

// CreateAdmin provisions an admin account. Admins cannot self-register.
func CreateAdmin(ctx context.Context, cfg *config.Config, log *logrus.Logger, req *dto.CreateAdminRequest) (*dto.UserResponse, error) {
	v := validator.NewValidator()
	if err := v.Validate(req); err != nil {
		return nil, fmt.Errorf("invalid admin account: %v", v.FormatValidationErrors(err))
	}

	if err := RunMigrations(cfg, log, MigrateUp); err != nil {
		return nil, err
	}

	db, err := database.NewPostgresConnection(cfg, log)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: log, DB: db}
	defer app.Close()

	deps := newDependencies(cfg, log, db, nil, nil)
	if err := verifyRoles(ctx, db, deps.roleRepo); err != nil {
		return nil, err
	}
	return deps.auth.CreateAdmin(ctx, req)
}

// verifyRoles fails when the role rows that user accounts point at are not
// seeded as expected.
func verifyRoles(ctx context.Context, db *gorm.DB, roleRepo domainRepo.RoleRepository) error {
	roles, err := roleRepo.FindAll(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}
	if missing := entity.MissingRoles(roles); len(missing) > 0 {
		return fmt.Errorf("roles not seeded: %s", strings.Join(missing, ", "))
	}
	return nil
}
