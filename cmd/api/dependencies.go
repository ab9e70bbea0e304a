package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/avsuite/av-cost-estimator/internal/domain/boq"
	"github.com/avsuite/av-cost-estimator/internal/domain/catalog"
	"github.com/avsuite/av-cost-estimator/internal/domain/importer"
	"github.com/avsuite/av-cost-estimator/internal/domain/learning"
	"github.com/avsuite/av-cost-estimator/pkg/config"
	"github.com/avsuite/av-cost-estimator/pkg/cron"
	"github.com/avsuite/av-cost-estimator/pkg/db"
	"github.com/avsuite/av-cost-estimator/pkg/kvstore"
	"github.com/avsuite/av-cost-estimator/pkg/metrics"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config   *config.Config
	DB       *db.DB
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	// Stores
	KVStore     kvstore.Store
	SearchIndex *catalog.SearchIndex
	CatalogRepo *catalog.Repository

	// Services
	LearningStore  *learning.Store
	Parser         *boq.Parser
	CatalogService *catalog.Service
	ImportService  *importer.Service
	Scheduler      *cron.Scheduler

	// Handlers
	ImportHandler   *importer.Handler
	LearningHandler *learning.Handler
	CatalogHandler  *catalog.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	if err := deps.initStores(); err != nil {
		return nil, fmt.Errorf("failed to init stores: %w", err)
	}
	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}
	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initStores initializes the learning blob store and the search index
func (d *Dependencies) initStores() error {
	kv, err := kvstore.NewFileStore(d.Config.Learning.DataDir)
	if err != nil {
		return fmt.Errorf("failed to init learning store: %w", err)
	}
	d.KVStore = kv

	index, err := catalog.NewSearchIndex(filepath.Join(d.Config.Learning.DataDir, "components.bleve"))
	if err != nil {
		return fmt.Errorf("failed to init search index: %w", err)
	}
	d.SearchIndex = index

	d.CatalogRepo = catalog.NewRepository(d.DB.Pool)

	d.Logger.Info("stores initialized")
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	d.Registry = prometheus.NewRegistry()
	d.Metrics = metrics.New(d.Registry)

	d.LearningStore = learning.NewStore(d.KVStore, d.Logger)
	d.Parser = boq.NewParser(d.Logger)
	d.CatalogService = catalog.NewService(d.CatalogRepo, d.SearchIndex, d.Logger)
	d.ImportService = importer.NewService(d.Parser, d.LearningStore, d.CatalogService, d.Metrics, d.Logger)

	d.Scheduler = cron.NewScheduler(d.LearningStore, d.Config.Learning.RetrainSchedule, d.Metrics, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() {
	d.ImportHandler = importer.NewHandler(d.ImportService, d.Config.Server.MaxUploadBytes, d.Logger)
	d.LearningHandler = learning.NewHandler(d.LearningStore, d.Metrics, d.Logger)
	d.CatalogHandler = catalog.NewHandler(d.CatalogService, d.Logger)

	d.Logger.Info("handlers initialized")
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.SearchIndex != nil {
		if err := d.SearchIndex.Close(); err != nil {
			d.Logger.Error("failed to close search index", slog.Any("error", err))
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
