// Package server boots the HTTP API: config, MongoDB, Redis, storage,
// indexes, logging sinks, routes, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vendora/app/routes"
	"vendora/app/services"
	"vendora/config"
	"vendora/database/indexes"
	"vendora/pkg/cache"
	"vendora/pkg/database"
	"vendora/pkg/logger"
	"vendora/pkg/metrics"
	"vendora/pkg/middleware"
	"vendora/pkg/reqid"
	"vendora/pkg/router"
	"vendora/pkg/storage"
)

// mailWorkers bounds concurrent SMTP deliveries.
const mailWorkers = 4

// Start boots every subsystem and blocks until SIGINT/SIGTERM.
// Redis is optional; everything else is required.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching and rate limits degrade to in-process", "error", err)
	}

	storage.Connect()

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := indexes.EnsureAll(bootCtx, database.DB()); err != nil {
		return err
	}

	var mongoLog *logger.MongoHandler
	if col := config.Get("LOG_MONGO_COLLECTION", ""); col != "" {
		mongoLog = logger.NewMongoHandler(database.Collection(col))
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mongoLog))
	}

	mailer := services.NewMailer(mailWorkers)

	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.CORSFromConfig()),
	)

	routes.RegisterAPI(r, mailer)

	// Serve uploaded files directly when the default disk is local.
	if d, ok := storage.Use("local").(interface{ Root() string }); ok {
		r.Mount("/uploads", http.StripPrefix("/uploads", http.FileServer(http.Dir(d.Root()))))
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	err := srv.Shutdown(shutdownCtx)

	mailer.Shutdown()
	if mongoLog != nil {
		mongoLog.Close()
	}
	if derr := database.Disconnect(shutdownCtx); derr != nil && err == nil {
		err = derr
	}
	return err
}
