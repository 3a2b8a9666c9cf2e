package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/employee_directory/internal/cache"
	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/handler"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/search"
	"github.com/locvowork/employee_directory/internal/service"
)

type App struct {
	Echo  *echo.Echo
	Store domain.Store
	Cache *cache.MemoryCache
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Initialize the document store. Without a configured project the
	// app runs on the in-memory store, which is only useful for local
	// development.
	if projectID := config.DefaultEnvConfig.DATASTORE_PROJECT_ID; projectID != "" {
		store, err := database.NewDatastoreStore(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to initialize datastore: %w", err)
		}
		a.Store = store
		logger.InfoLog(ctx, "Datastore connection established for project %s", projectID)
	} else {
		a.Store = database.NewMemStore()
		logger.WarnLog(ctx, "DATASTORE_PROJECT_ID not set, using in-memory store")
	}

	// Seed exactly once, only when both collections are empty.
	seeded, err := database.NewDataSeeder(a.Store).SeedIfEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}
	if seeded {
		logger.InfoLog(ctx, "Seeded initial directory data")
	}

	// Result cache
	a.Cache = cache.NewMemoryCache(config.DefaultEnvConfig.CACHE_MAX_ENTRIES)
	a.Cache.Start()

	// Optional search backend
	var searcher domain.Searcher
	if url := config.DefaultEnvConfig.ELASTICSEARCH_URL; url != "" {
		es, err := search.NewElasticSearcher(url)
		if err != nil {
			return fmt.Errorf("failed to initialize search backend: %w", err)
		}
		searcher = es
		logger.InfoLog(ctx, "Elasticsearch search backend enabled")
	}

	// Initialize dependencies
	svc := service.NewDirectoryService(a.Store, a.Cache, searcher, service.TTLConfig{
		Employees:   config.DefaultEnvConfig.CACHE_EMPLOYEES_TTL,
		Employee:    config.DefaultEnvConfig.CACHE_EMPLOYEE_TTL,
		Departments: config.DefaultEnvConfig.CACHE_DEPARTMENTS_TTL,
	})
	dirHandler := handler.NewDirectoryHandler(svc)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(dirHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(dirHandler *handler.DirectoryHandler) {
	a.Echo.POST("/api/query", dirHandler.QueryHandler)

	exportGroup := a.Echo.Group("/export")
	exportGroup.GET("/employees", dirHandler.ExportEmployeesHandler)
}

func (a *App) Run() error {
	defer a.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

// Close releases the shared store client and stops the cache janitor.
func (a *App) Close() {
	if a.Cache != nil {
		a.Cache.Stop()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			logger.ErrorLog(context.Background(), "Failed to close store", err)
		}
	}
}
