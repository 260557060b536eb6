package bootstrap

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	"github.com/andrescamacho/craftchain-go/internal/adapters/dataset"
	"github.com/andrescamacho/craftchain-go/internal/adapters/persistence"
	"github.com/andrescamacho/craftchain-go/internal/application/catalog/services"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/application/mediator"
	"github.com/andrescamacho/craftchain-go/internal/application/middleware"
	planningQueries "github.com/andrescamacho/craftchain-go/internal/application/planning/queries"
	"github.com/andrescamacho/craftchain-go/internal/application/setup"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/config"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/database"
)

// Options tune what New wires beyond the catalog and handlers
type Options struct {
	// OpenDatabase opens the database even when the catalog is read from a
	// file. Needed for catalog import.
	OpenDatabase bool

	// Middlewares run inside the logging middleware, in order
	Middlewares []mediator.Middleware
}

// Runtime is the wired application: catalog provider, mediator and service
type Runtime struct {
	Config   *config.Config
	Logger   common.Logger
	DB       *gorm.DB
	Provider *services.CachedCatalogProvider
	Mediator mediator.Mediator
	Service  *api.LocalService
}

// New wires a Runtime from cfg. The catalog is not loaded until first use.
func New(cfg *config.Config, logger common.Logger, opts Options) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: logger}

	var repo *persistence.GormCatalogRepository
	if cfg.Catalog.Source == config.CatalogSourceDatabase || opts.OpenDatabase {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		rt.DB = db
		repo = persistence.NewGormCatalogRepository(db)
	}

	var source common.CatalogSource
	switch cfg.Catalog.Source {
	case config.CatalogSourceDatabase:
		source = repo
	default:
		source = dataset.NewFileCatalogSource(cfg.Catalog.Path, nil)
	}
	rt.Provider = services.NewCachedCatalogProvider(source)

	registry := setup.NewHandlerRegistry(rt.Provider, planningQueries.ComputePlanOptions{
		MaxScaleFactor:   cfg.Planner.MaxScaleFactor,
		DefaultRatioMode: cfg.Planner.RatioMode,
		DefaultMaxDepth:  cfg.Planner.DefaultMaxDepth(),
		CacheSize:        cfg.Planner.CacheSize,
		CacheTTL:         cfg.Planner.CacheTTL,
	})
	if repo != nil {
		registry.WithImport(dataset.NewFileReader(), repo)
	}

	chain := append([]mediator.Middleware{middleware.LoggingMiddleware(logger)}, opts.Middlewares...)
	m, err := registry.CreateConfiguredMediator(chain...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	rt.Mediator = m
	rt.Service = api.NewLocalService(m)

	return rt, nil
}

// Warm loads the catalog now instead of on the first request
func (rt *Runtime) Warm(ctx context.Context) error {
	_, err := rt.Provider.Catalog(common.WithLogger(ctx, rt.Logger))
	return err
}

// Close releases the database connection, if any
func (rt *Runtime) Close() error {
	if rt.DB == nil {
		return nil
	}
	return database.Close(rt.DB)
}
