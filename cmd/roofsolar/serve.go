package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/roofsolar/planner/internal/cache"
	"github.com/roofsolar/planner/internal/config"
	"github.com/roofsolar/planner/internal/provider"
	"github.com/roofsolar/planner/internal/server"
)

// runServe serves the planner until ctx is cancelled.
func runServe(ctx context.Context) error {
	srvCfg := config.GetServerConfig()
	imgCfg := config.GetImageryConfig()
	client := googleClient()

	deps := server.Deps{
		Suggester: Catalog,
		Resolver:  resolver(client),
		Imagery:   provider.NewCachedImagery(provider.NewGoogleImagery(client), cache.NewImageCache(imgCfg.CacheSize)),
		Exporter:  exporter(),
	}
	if InfluxManager != nil {
		deps.Recorder = InfluxManager
	}
	if config.GetGoogleConfig().APIKey == "" {
		Logger.Warn("No Google Maps API key configured, geocoding and imagery will fail")
	}

	srv, err := server.New(sessionSettings(), deps, server.Options{
		AllowedOrigins: srvCfg.AllowedOrigins,
		ImageWidth:     imgCfg.Width,
		ImageHeight:    imgCfg.Height,
		Meter:          OTelProvider.Meter(AppName),
		Logger:         Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	httpSrv := &http.Server{
		Addr:              srvCfg.Addr(),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger.Info("Planner listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errCh
}
