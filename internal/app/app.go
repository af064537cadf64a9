package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stone-age-io/termfetch/internal/collector"
	"github.com/stone-age-io/termfetch/internal/config"
	"github.com/stone-age-io/termfetch/internal/dashboard"
	"github.com/stone-age-io/termfetch/internal/probe"
	"github.com/stone-age-io/termfetch/internal/scheduler"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options are the process-level settings given on the command line
type Options struct {
	ConfigPath string
	// LogLevel overrides logging.level when set
	LogLevel string
	// Console also logs to stderr. The dashboard owns the terminal, so only
	// headless commands enable it.
	Console bool
}

// App wires configuration, logging and the collector together
type App struct {
	config    *config.Config
	logger    *zap.Logger
	collector dashboard.Collector
	version   string
}

// New creates a new app instance
func New(opts Options, version string) (*App, error) {
	// Load configuration
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging, opts.Console)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	table := probe.DefaultTable()
	logger.Info("Starting termfetch",
		zap.String("version", version),
		zap.String("platform", table.Platform),
		zap.String("source", cfg.Probes.Source))

	source, err := collector.NewSource(collector.SourceConfig{
		Kind:           cfg.Probes.Source,
		CommandTimeout: cfg.Probes.CommandTimeout,
		ExporterURL:    cfg.Probes.ExporterURL,
		Table:          table,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create hardware source: %w", err)
	}

	c := collector.New(
		source,
		probe.NewNetworkProbe(cfg.Network.Timeout, logger),
		collector.NewOoklaMeter(cfg.SpeedTest.ServerID, logger),
		collector.OSEnvironment{},
		table.Env,
		collector.Endpoints{IPv4: cfg.Network.IPv4URL, IPv6: cfg.Network.IPv6URL},
		logger,
	)

	return &App{
		config:    cfg,
		logger:    logger,
		collector: c,
		version:   version,
	}, nil
}

// RunDashboard shows the interactive dashboard and blocks until the user quits
// or a shutdown signal arrives
func (a *App) RunDashboard(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dash := dashboard.New(a.collector, a.version, a.logger)

	sched, err := scheduler.New(a.logger)
	if err != nil {
		return err
	}
	if err := sched.Every("dashboard-refresh", a.config.Dashboard.RefreshInterval, dash.Refresh); err != nil {
		_ = sched.Shutdown()
		return err
	}
	sched.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// quitting the dashboard ends the scheduler too
		defer cancel()
		return dash.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		return sched.Shutdown()
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

// Shutdown flushes the logger
func (a *App) Shutdown() {
	a.logger.Info("termfetch exiting")
	_ = a.logger.Sync()
}

// initLogger creates and configures the logger with log rotation
func initLogger(cfg config.LoggingConfig, console bool) (*zap.Logger, error) {
	// Parse log level
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	// Create encoder config
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Setup log rotation with lumberjack
	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     28, // days
		Compress:   true,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(fileWriter), level),
	}
	if console {
		cores = append(cores,
			zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger, nil
}
