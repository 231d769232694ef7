package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/roofsolar/planner/internal/api"
	"github.com/roofsolar/planner/internal/catalog"
	"github.com/roofsolar/planner/internal/config"
	"github.com/roofsolar/planner/internal/database"
	"github.com/roofsolar/planner/internal/export"
	"github.com/roofsolar/planner/internal/influx"
	"github.com/roofsolar/planner/internal/layout"
	"github.com/roofsolar/planner/internal/logging"
	intOtel "github.com/roofsolar/planner/internal/otel"
	"github.com/roofsolar/planner/internal/provider"
	"github.com/roofsolar/planner/internal/server"
	"github.com/roofsolar/planner/internal/session"
)

// services started by setup
var (
	// ZeroLogger is used by the catalog database and the influx managers
	ZeroLogger zerolog.Logger

	DBManager     *database.Manager
	Catalog       *catalog.Catalog
	InfluxManager *influx.Manager
)

// setup loads configuration and starts logging, telemetry, the address
// catalog and the layout sink. The returned func releases them.
func setup(configDir string) (func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// a missing .env is fine
	envErr := godotenv.Load(filepath.Join(configDir, ".env"))
	cfgErr := config.Load(configDir)

	logsDir := config.GetString("logsDir")
	logLevel := config.GetString("logLevel")

	logFile, err := logging.OpenLogFile(logging.LogFilePath(logsDir, AppName, SessionStartTime))
	if err != nil {
		return closeAll, err
	}
	closers = append(closers, func() { _ = logFile.Close() })

	var sinks []io.Writer
	var slogOpts []logging.Option
	if gl := config.GetGraylogConfig(); gl.Enabled {
		w, err := logging.NewGraylogWriter(gl.Address)
		if err != nil {
			fmt.Fprintf(os.Stderr, "graylog disabled: %v\n", err)
		} else {
			sinks = append(sinks, w)
			slogOpts = append(slogOpts, logging.WithSink(w))
			closers = append(closers, func() { _ = w.Close() })
		}
	}

	otelCfg := config.GetOTelConfig()
	var otelFile *os.File
	if otelCfg.Enabled && otelCfg.Endpoint == "" {
		otelFile, err = logging.OpenLogFile(filepath.Join(logsDir, AppName+".otel.jsonl"))
		if err != nil {
			return closeAll, err
		}
		closers = append(closers, func() { _ = otelFile.Close() })
	}
	telemetry := intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	}
	if otelFile != nil {
		telemetry.LogWriter = otelFile
		telemetry.MetricWriter = otelFile
	}
	OTelProvider, err = intOtel.New(telemetry)
	if err != nil {
		return closeAll, fmt.Errorf("failed to start telemetry: %w", err)
	}
	closers = append(closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = OTelProvider.Shutdown(ctx)
	})

	slogOpts = append(slogOpts,
		logging.WithContext(server.ContextAttrs),
		logging.WithInstrumentationName(AppName),
	)
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(logFile, logLevel, OTelProvider.LoggerProvider(), slogOpts...)
	Logger = SlogManager.Logger()
	closers = append(closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = SlogManager.Flush(ctx)
	})

	Logger.Info("Starting up", "version", Version, "buildDate", BuildDate)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		Logger.Warn("Failed to load .env file", "error", envErr)
	}
	if cfgErr != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", cfgErr)
	} else {
		Logger.Info("Loaded config")
	}

	ZeroLogger = logging.NewZerolog(logLevel, "storage", append([]io.Writer{logFile}, sinks...)...)

	if err := openCatalog(); err != nil {
		return closeAll, err
	}
	closers = append(closers, func() { _ = DBManager.Close() })

	InfluxManager = openInflux(logsDir)
	if InfluxManager != nil {
		closers = append(closers, func() { _ = InfluxManager.Close() })
	}

	return closeAll, nil
}

func openCatalog() error {
	cfg := config.GetCatalogConfig()
	DBManager = database.NewManager(database.Config{
		Driver:   cfg.Driver,
		Path:     cfg.Path,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		Database: cfg.Database,
	}, ZeroLogger)

	if err := DBManager.Connect(); err != nil {
		return fmt.Errorf("failed to open address catalog: %w", err)
	}
	if err := DBManager.Setup(); err != nil {
		return err
	}

	Catalog = catalog.New(DBManager.DB, cfg.Limit, ZeroLogger)
	if cfg.Seed {
		if _, err := Catalog.Seed(context.Background()); err != nil {
			return err
		}
	}
	return nil
}

// openInflux returns nil when the sink is disabled or cannot start.
func openInflux(logsDir string) *influx.Manager {
	cfg := config.GetInfluxConfig()
	m := influx.NewManager(influx.Config{
		Enabled:  cfg.Enabled,
		Protocol: cfg.Protocol,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Token:    cfg.Token,
		Org:      cfg.Org,
		Bucket:   cfg.Bucket,
	}, ZeroLogger, filepath.Join(logsDir, AppName+".layouts.lp.gz"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.Connect(ctx); err != nil {
		if !errors.Is(err, influx.ErrDisabled) {
			Logger.Error("Failed to start layout sink", "error", err)
		}
		return nil
	}
	return m
}

// sessionSettings builds the session parameters from configuration.
func sessionSettings() session.Settings {
	geom := config.GetGeometryConfig()
	lay := config.GetLayoutConfig()
	img := config.GetImageryConfig()

	st := session.DefaultSettings()
	st.MetersPerPixel = geom.MetersPerPixel
	st.CloseRadius = geom.CloseRadius
	st.Factors = layout.Factors{
		Efficiency:  lay.EfficiencyFactor,
		AnnualYield: lay.AnnualYieldFactor,
	}
	st.PanelsPerRow = lay.PanelsPerRow
	st.Panels = config.GetPanelDefaults()
	st.Zoom = session.ZoomRange{Min: img.MinZoom, Max: img.MaxZoom, Default: img.Zoom}
	st.PanStep = img.PanStep
	return st
}

func googleClient() *api.Client {
	g := config.GetGoogleConfig()
	return api.New(api.Options{
		APIKey:       g.APIKey,
		GeocodeURL:   g.GeocodeURL,
		StaticMapURL: g.StaticMapURL,
		Region:       g.Region,
		Language:     g.Language,
		Timeout:      g.Timeout,
	})
}

// resolver answers from the catalog and geocodes the rest with Google.
func resolver(client *api.Client) *provider.Resolver {
	return provider.NewResolver(Catalog, provider.NewGoogleGeocoder(client), Logger)
}

func exporter() *export.Writer {
	cfg := config.GetExportConfig()
	return export.New(export.Config{
		OutputDir:    cfg.OutputDir,
		StampAddress: cfg.StampAddress,
		DXF:          cfg.DXF,
	}, Logger)
}
