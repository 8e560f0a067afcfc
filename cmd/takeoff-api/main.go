package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kuperiu/bimsyncManager/internal/api"
	"github.com/kuperiu/bimsyncManager/internal/api/handler"
	"github.com/kuperiu/bimsyncManager/internal/cache"
	"github.com/kuperiu/bimsyncManager/internal/config"
	"github.com/kuperiu/bimsyncManager/internal/logger"
	"github.com/kuperiu/bimsyncManager/internal/store"
	"github.com/kuperiu/bimsyncManager/internal/takeoff"
	"github.com/kuperiu/bimsyncManager/pkg/router"
	"github.com/kuperiu/bimsyncManager/pkg/utils"
)

// @title Takeoff API
// @version 1.0
// @description Quantity takeoff over bimsync IFC product exports: column discovery, grouping and pivoted reports.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.L.Fatalw("failed to load config", "error", err)
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		logger.L.Fatalw("failed to create logger", "error", err)
	}
	defer log.Sync()

	// Init DB
	db, err := store.Open(cfg.Database.Path, log)
	if err != nil {
		log.Fatalw("failed to open report store", "error", err)
	}
	defer db.Close()

	output := utils.NewOutputManager(cfg.Output.Dir)
	productCache := cache.NewInMemoryCache(cfg, log)
	runner := takeoff.NewRunner(
		takeoff.NewIngestor(cfg, productCache, log),
		takeoff.NewExporter(output, log),
		log,
	)

	// Create router
	r := router.New(log)

	// Register API routes
	api.RegisterRoutes(r, handler.NewTakeoffHandler(db, runner, output, log))
	log.Infow("routes registered", "routes", r.Routes())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	if err := r.Start(ctx, cfg.Server.Address, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
