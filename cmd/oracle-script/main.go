package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/StrathCole/oracle-script/pkg/config"
	"github.com/StrathCole/oracle-script/pkg/datasource"
	"github.com/StrathCole/oracle-script/pkg/host"
	"github.com/StrathCole/oracle-script/pkg/logging"
	"github.com/StrathCole/oracle-script/pkg/metrics"
	"github.com/StrathCole/oracle-script/pkg/registry"
	"github.com/StrathCole/oracle-script/pkg/script"
	"github.com/StrathCole/oracle-script/pkg/server/api"
	"github.com/StrathCole/oracle-script/pkg/version"
)

var (
	configFile   = flag.String("config", "config/config.yaml", "Path to configuration file")
	showVer      = flag.Bool("version", false, "Show version and exit")
	dataSourceID = flag.Int64("datasource", 0, "Run one data source for the symbols given as arguments and print its report")
	request      = flag.String("request", "", "Run one local request for comma-separated symbols and print the output")
	minSources   = flag.Uint("min-sources", 1, "Minimum source count for -request")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version.AgentString())
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *request != "" {
		cfg.Mode = config.ModeRequest
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// One-shot modes keep stdout for their result.
	output := cfg.Logging.Output
	if *dataSourceID != 0 || !cfg.IsServerMode() {
		output = "stderr"
	}
	logger, err := logging.Init(cfg.Logging.Level, cfg.Logging.Format, output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *dataSourceID != 0 {
		if err := runDataSource(ctx, cfg, registry.DataSourceID(*dataSourceID), flag.Args(), logger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	sources, err := buildSources(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data sources: %v\n", err)
		os.Exit(1)
	}

	runner, err := host.NewRunner(script.Default(logger.With("component", "script")),
		sources, cfg.Script.AskCount, cfg.Script.MinCount, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create runner: %v\n", err)
		os.Exit(1)
	}

	if !cfg.IsServerMode() {
		if err := runRequest(ctx, runner, *request, cfg.Server.RequestTimeout.ToDuration()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logger.Info("Starting oracle-script", "version", version.Version, "data_sources", len(sources))

	if err := runServer(ctx, cfg, runner, logger); err != nil {
		logger.Error("Component failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}

// loadConfig falls back to the built-in defaults when the file does not exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func buildSources(cfg *config.Config, logger *logging.Logger) ([]datasource.DataSource, error) {
	enabled := cfg.EnabledDataSources()
	sources := make([]datasource.DataSource, 0, len(enabled))
	for _, dsCfg := range enabled {
		ds, err := datasource.Create(strings.ToLower(dsCfg.Type), registry.DataSourceID(dsCfg.ID), dsCfg.Config, logger)
		if err != nil {
			return nil, fmt.Errorf("data source %d: %w", dsCfg.ID, err)
		}
		logger.Debug("Data source created", "data_source", ds.Name(), "type", dsCfg.Type)
		sources = append(sources, ds)
	}
	return sources, nil
}

// runDataSource prints one report line, the way a validator would run the data source.
func runDataSource(ctx context.Context, cfg *config.Config, id registry.DataSourceID, symbols []string, logger *logging.Logger) error {
	sources, err := buildSources(cfg, logger)
	if err != nil {
		return err
	}
	for _, ds := range sources {
		if ds.ID() != id {
			continue
		}
		line, err := ds.Report(ctx, symbols)
		if err != nil {
			return err
		}
		fmt.Println(line)
		return nil
	}
	return fmt.Errorf("data source %d is not configured", id)
}

func runRequest(ctx context.Context, runner *host.Runner, symbols string, timeout time.Duration) error {
	if *minSources > 255 {
		return fmt.Errorf("min-sources must be <= 255")
	}
	input := script.Input{
		Symbols:            strings.Split(symbols, ","),
		MinimumSourceCount: uint8(*minSources),
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := runner.Run(ctx, input)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runServer(ctx context.Context, cfg *config.Config, runner *host.Runner, logger *logging.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		metrics.Init()
		go func() {
			logger.Info("Starting metrics server", "addr", cfg.Metrics.Addr)
			if err := metrics.ServeHTTP(cfg.Metrics.Addr, cfg.Metrics.Path); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	server := api.NewServer(cfg.Server.HTTP.Addr, runner, cfg.Server.RequestTimeout.ToDuration(), logger)

	if cfg.Server.WebSocket.Enabled {
		wsServer := api.NewWebSocketServer(cfg.Server.WebSocket.Addr, logger)
		server.SetWebSocketServer(wsServer)
		g.Go(func() error {
			return wsServer.Start(gctx)
		})
	}

	g.Go(func() error {
		if cfg.Server.HTTP.TLS.Enabled {
			return server.StartTLS(cfg.Server.HTTP.TLS.Cert, cfg.Server.HTTP.TLS.Key)
		}
		return server.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	return g.Wait()
}
