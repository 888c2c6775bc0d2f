package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/activity"
	activitypg "github.com/tranyenminhbd/docuflow/internal/activity/postgres"
	"github.com/tranyenminhbd/docuflow/internal/auth"
	authpg "github.com/tranyenminhbd/docuflow/internal/auth/postgres"
	"github.com/tranyenminhbd/docuflow/internal/backup"
	"github.com/tranyenminhbd/docuflow/internal/category"
	categorypg "github.com/tranyenminhbd/docuflow/internal/category/postgres"
	"github.com/tranyenminhbd/docuflow/internal/core/events"
	"github.com/tranyenminhbd/docuflow/internal/dashboard"
	"github.com/tranyenminhbd/docuflow/internal/department"
	departmentpg "github.com/tranyenminhbd/docuflow/internal/department/postgres"
	"github.com/tranyenminhbd/docuflow/internal/document"
	documentpg "github.com/tranyenminhbd/docuflow/internal/document/postgres"
	"github.com/tranyenminhbd/docuflow/internal/role"
	rolepg "github.com/tranyenminhbd/docuflow/internal/role/postgres"
	"github.com/tranyenminhbd/docuflow/internal/settings"
	settingspg "github.com/tranyenminhbd/docuflow/internal/settings/postgres"
	"github.com/tranyenminhbd/docuflow/internal/transport/rest"
	"github.com/tranyenminhbd/docuflow/internal/user"
	userpg "github.com/tranyenminhbd/docuflow/internal/user/postgres"
	"github.com/tranyenminhbd/docuflow/internal/views"
	"github.com/tranyenminhbd/docuflow/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	SQLDB    *sql.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.SQLDB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	uploadDir := deps.Config.Server.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		slog.Warn("could not create upload directory", "dir", uploadDir, "error", err)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.SQLDB,
		deps.Handlers,
		deps.Logger,
		splitOrigins(deps.Config.Server.AllowedOrigins),
		uploadDir,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	if err := validateOpenAPISpec(config.Server.OpenAPISpecPath); err != nil {
		return nil, fmt.Errorf("openapi spec: %w", err)
	}

	db, sqlDB, err := openDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	eventBus := events.NewEventBus(log)

	// Activity log: written through the event bus, read by its handler.
	activityRepo := activitypg.NewActivityRepository(db)
	activityService := activity.NewService(activityRepo)
	activity.NewEventHandler(activityService, log).RegisterEventHandlers(eventBus)

	roleRepo := rolepg.NewRoleRepository(db)
	roleService := role.NewService(roleRepo, eventBus)
	roleResolver := rolepg.NewResolver(roleRepo)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(
		authpg.NewAuthRepository(db),
		roleResolver,
		tokenGenerator,
		eventBus,
		config.Security.BCryptCost,
	)

	userService := user.NewService(userpg.NewUserRepository(db), authService, eventBus)
	documentService := document.NewService(documentpg.NewDocumentRepository(db), eventBus)
	departmentService := department.NewService(departmentpg.NewDepartmentRepository(db), eventBus)
	categoryService := category.NewService(categorypg.NewCategoryRepository(db), eventBus)
	settingsService := settings.NewService(settingspg.NewSettingsRepository(db), eventBus)
	backupService := backup.NewService(db, eventBus, config.Security.BCryptCost)
	dashboardService := dashboard.NewService(documentService, categoryService, departmentService, activityService)

	uploadDir := config.Server.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		Views:      views.NewHandler(),
		Dashboard:  dashboard.NewHandler(dashboardService),
		Document:   document.NewHandler(documentService),
		User:       user.NewHandler(userService),
		Department: department.NewHandler(departmentService),
		Role:       role.NewHandler(roleService),
		Category:   category.NewHandler(categoryService),
		Activity:   activity.NewHandler(activityService),
		Settings:   settings.NewHandler(settingsService, uploadDir),
		Backup:     backup.NewHandler(backupService),
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		SQLDB:    sqlDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		EventBus: eventBus,
		Logger:   log,
	}, nil
}

// openDB opens the configured database through GORM. Postgres goes through
// sqlx/pgx so the pool settings apply before GORM takes over the connection;
// sqlite is opened directly and migrated in-process, since single-box
// deployments do not run the goose migrations.
func openDB(cfg internal.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	switch cfg.Driver {
	case "postgres":
		conn, err := sqlx.Connect("pgx", cfg.Source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: conn.DB}), gormConfig)
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("failed to open gorm connection: %w", err)
		}
		return db, conn.DB, nil

	case "sqlite":
		db, err := gorm.Open(gormsqlite.Open(cfg.Source), gormConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		sqlDB.SetMaxOpenConns(1)

		if err := autoMigrate(db); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		return db, sqlDB, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&role.Role{},
		&department.Department{},
		&category.Category{},
		&user.User{},
		&document.Document{},
		&settings.AppConfig{},
	); err != nil {
		return err
	}
	return activitypg.Migrate(db)
}

// validateOpenAPISpec fails startup when the served contract does not parse,
// so a broken spec never reaches /swagger.
func validateOpenAPISpec(path string) error {
	if path == "" {
		return nil
	}
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	return nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
