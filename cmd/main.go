package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	app "github.com/okian/sireline/internal/app"
	"github.com/okian/sireline/internal/config"
	"github.com/okian/sireline/internal/simulate"
	"github.com/okian/sireline/pkg/logger"
	"github.com/okian/sireline/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default simulation constants.
const (
	defaultNumBirths        = 10000
	defaultWorkerMultiplier = 2
	defaultDrainWait        = 30 * time.Second
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	var (
		numBirths  = flag.Int("births", defaultNumBirths, "Number of birth events to generate and submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent submission workers")
		drainWait  = flag.Duration("drain-wait", defaultDrainWait, "How long to wait for the queue to drain")
		outputFile = flag.String("output", "", "Output file for generated events (optional)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	logLevel := cfg.LogLevel
	if *verbose {
		logLevel = "debug"
	}
	if err := logger.SetLevelString(logLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", logLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.BirthQueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithAffinityThreshold(cfg.AffinityThreshold),
		app.WithLegacyTalent(cfg.LegacyTalentMin, cfg.LegacyTalentChance),
		app.WithMaternalThresholds(cfg.StressCalmMax, cfg.FeedRichMin, cfg.StressHighMin, cfg.FeedPoorMax),
		app.WithSeverityBands(cfg.ModerateAt, cfg.SevereAt),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Optional Prometheus endpoint
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = startMetricsServer(ctx, cfg.MetricsAddr)
	}

	// Run the simulation batch
	simCfg := &simulate.Config{
		NumBirths:  *numBirths,
		Workers:    *workers,
		DrainWait:  *drainWait,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	}
	if err := simulate.Run(ctx, simCfg, svc); err != nil {
		loggerInstance.Error(ctx, "simulation failed", logger.Error(err))
	}

	// When metrics are enabled, stay up so the batch results can be scraped
	if metricsSrv != nil {
		loggerInstance.Info(ctx, "metrics endpoint still serving; interrupt to exit",
			logger.String("addr", cfg.MetricsAddr))
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			loggerInstance.Error(ctx, "metrics server shutdown failed", logger.Error(err))
		}
	}

	loggerInstance.Info(ctx, "simulator stopped")
}

// startMetricsServer exposes the Prometheus registry on /metrics.
func startMetricsServer(ctx context.Context, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Get().Info(ctx, "starting metrics server", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("metrics server failed: " + err.Error() + "\n")
		}
	}()

	return srv
}
