// Package main provides the entry point for ferrodb-server.
//
// ferrodb-server is the core service process for FerroDB, an in-memory,
// Redis-protocol-compatible key-value store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/zuhaib786/FerroDB/internal/infra/confloader"
	"github.com/zuhaib786/FerroDB/internal/infra/shutdown"
	"github.com/zuhaib786/FerroDB/internal/pubsub"
	"github.com/zuhaib786/FerroDB/internal/server/config"
	"github.com/zuhaib786/FerroDB/internal/server/ferroserver"
	"github.com/zuhaib786/FerroDB/internal/storage"
	"github.com/zuhaib786/FerroDB/internal/telemetry/logger"
	"github.com/zuhaib786/FerroDB/internal/telemetry/metric"
)

// Build information, set via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// saveRules collects repeated `--save seconds:changes` flags.
type saveRules []string

func (s *saveRules) String() string { return fmt.Sprint([]string(*s)) }
func (s *saveRules) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run())
}

// ioFailure marks an error that occurred after the server was already
// serving traffic, so run maps it to exit code 2 instead of 1.
type ioFailure struct{ error }

func (e *ioFailure) Unwrap() error { return e.error }

// run returns the process exit code directly: 0 on clean shutdown, 1 on
// startup failure (bad flags/config, port already bound, unrecoverable
// persistence state), 2 on fatal I/O once the server was already running.
func run() int {
	err := start()
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if _, ok := err.(*ioFailure); ok {
		return 2
	}
	return 1
}

func start() error {
	var (
		bind        = flag.String("bind", "", "Address to bind to")
		port        = flag.Int("port", 0, "Port to listen on")
		dataDir     = flag.String("dir", "", "Directory for AOF and snapshot files")
		appendOnly  = flag.String("appendonly", "", "Enable the append-only file: yes or no")
		configFile  = flag.String("config", "", "Optional path to a YAML configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
		rules       saveRules
	)
	flag.Var(&rules, "save", "Snapshot save rule \"<seconds>:<changes>\" (repeatable)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ferrodb-server %s (commit: %s, built: %s)\n", version, commit, buildTime)
		return nil
	}

	cfg, err := loadConfig(*configFile, *bind, *port, *dataDir, *appendOnly, rules)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, slogLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting ferrodb-server",
		"version", version,
		"commit", commit,
		"bind", cfg.Server.Bind,
		"port", cfg.Server.Port)

	storageEngine, err := initStorage(cfg, slogLogger)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	ctx := context.Background()
	if err := storageEngine.Recover(ctx); err != nil {
		return fmt.Errorf("storage recovery: %w", err)
	}

	hub := pubsub.NewHub()

	registry := metric.NewRegistry()
	registry.RegisterCollector(metric.NewCollector(engineStats(storageEngine, cfg)))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Bind, cfg.Server.Port)
	srv := ferroserver.New(ferroserver.Config{
		Address:      addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, storageEngine, hub, slogLogger).WithMetrics(registry)

	metricsSrv := &http.Server{
		Addr:    "127.0.0.1:9121",
		Handler: registry.Handler(),
	}

	// Hooks run in reverse registration order: stop accepting new
	// connections and drain in-flight ones first, then flush storage to
	// disk, then tear down the metrics endpoint last.
	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down metrics server")
		return metricsSrv.Shutdown(ctx)
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing storage engine")
		return storageEngine.Close()
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down resp server")
		return srv.Shutdown(ctx)
	})

	go func() {
		log.Info("metrics server listening", "addr", metricsSrv.Addr)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", "error", err)
		}
	}()

	shutdownErrCh := make(chan error, 1)
	go func() {
		shutdownErrCh <- shutdownHandler.Wait()
	}()

	log.Info("server started, press Ctrl+C to stop")
	log.Info("resp server listening", "addr", addr)
	if err := srv.Start(context.Background()); err != nil {
		return fmt.Errorf("resp server: %w", err)
	}

	if err := <-shutdownErrCh; err != nil {
		log.Error("shutdown error", "error", err)
		return &ioFailure{fmt.Errorf("graceful shutdown: %w", err)}
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig starts from defaults, layers an optional config file and
// FERRODB_ environment variables, then applies explicit flags last so they
// always win over file/env values.
func loadConfig(configFile, bind string, port int, dataDir, appendOnly string, rules saveRules) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if bind != "" {
		cfg.Server.Bind = bind
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	switch appendOnly {
	case "yes":
		cfg.Storage.AppendOnly = true
	case "no":
		cfg.Storage.AppendOnly = false
	case "":
	default:
		return nil, fmt.Errorf("--appendonly must be \"yes\" or \"no\", got %q", appendOnly)
	}
	if len(rules) > 0 {
		cfg.Storage.SaveRules = rules
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
func initLogger(cfg *config.ServerConfig) (logger.Logger, *slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.SetDefault(log)
	return log, slog.Default(), nil
}

// initStorage initializes the storage engine.
func initStorage(cfg *config.ServerConfig, log *slog.Logger) (*storage.Engine, error) {
	storageCfg := storage.DefaultConfig(cfg.Storage.DataDir)
	storageCfg.Logger = log
	storageCfg.AppendOnly = cfg.Storage.AppendOnly
	storageCfg.Snapshot.RetentionCount = cfg.Storage.SnapshotKeep
	storageCfg.SnapshotInterval, storageCfg.MinChanges = snapshotIntervalFromRules(cfg.Storage.SaveRules)

	return storage.New(storageCfg)
}

// snapshotIntervalFromRules picks the rule with the shortest period among
// the configured save rules to drive the engine's single periodic-snapshot
// ticker, and returns that rule's change-count threshold alongside it; the
// engine has one background save loop rather than redis's full matrix of
// independent (seconds, changes) triggers, so only the tightest rule's
// period and change threshold are enforced, not every configured rule.
func snapshotIntervalFromRules(rules []string) (time.Duration, int64) {
	best := storage.DefaultSnapshotInterval
	var bestChanges int64
	found := false
	for _, rule := range rules {
		var seconds int
		var changes int64
		if _, err := fmt.Sscanf(rule, "%d:%d", &seconds, &changes); err != nil {
			continue
		}
		d := time.Duration(seconds) * time.Second
		if !found || d < best {
			best = d
			bestChanges = changes
			found = true
		}
	}
	return best, bestChanges
}

// engineStats builds the metric.StatsFunc the Prometheus collector polls
// at scrape time.
func engineStats(engine *storage.Engine, cfg *config.ServerConfig) metric.StatsFunc {
	return func() metric.Stats {
		var aofSize int64
		if cfg.Storage.AppendOnly {
			if info, err := os.Stat(cfg.Storage.DataDir + "/" + storage.DefaultAOFPath); err == nil {
				aofSize = info.Size()
			}
		}
		return metric.Stats{
			KeyCount:     engine.Keyspace().DBSize(),
			AOFSizeBytes: aofSize,
		}
	}
}
