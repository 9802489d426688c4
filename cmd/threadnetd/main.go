// Threadnetd is the Thread network management daemon.
//
// It stores Thread operational datasets, discovers border routers on the
// local network via mDNS, and exposes both over a WebSocket API.
//
// Usage:
//
//	threadnetd serve [flags]
//
// See 'threadnetd serve --help' for available options.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/threadnet-protocol/threadnet-go/pkg/api"
	"github.com/threadnet-protocol/threadnet-go/pkg/config"
	"github.com/threadnet-protocol/threadnet-go/pkg/dataset"
	"github.com/threadnet-protocol/threadnet-go/pkg/discovery"
	"github.com/threadnet-protocol/threadnet-go/pkg/log"
	"github.com/threadnet-protocol/threadnet-go/pkg/persistence"
	"github.com/threadnet-protocol/threadnet-go/pkg/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "threadnetd",
	Short: "Thread network management daemon",
	Long: `Threadnetd manages Thread operational datasets and discovers Thread
border routers on the local network.

Datasets are validated at submission, persisted to disk and exposed over a
WebSocket command API. Border routers announcing _meshcop._udp via mDNS are
tracked live while at least one API client holds a discovery subscription.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	configPath    string
	listenAddress string
	stateDir      string
	logLevel      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the daemon",
	Long: `Start the daemon: load the persisted dataset store, set up mDNS
discovery and serve the WebSocket API until interrupted.`,
	Example: `  # Start with defaults (listens on localhost:8123)
  threadnetd serve

  # Start with a config file
  threadnetd serve --config /etc/threadnet/config.yaml

  # Override the listen address and state directory
  threadnetd serve --listen 0.0.0.0:8123 --state-dir /var/lib/threadnet`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")
	serveCmd.Flags().StringVarP(&listenAddress, "listen", "l", "", "API listen address (overrides config)")
	serveCmd.Flags().StringVar(&stateDir, "state-dir", "", "State directory (overrides config)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listenAddress != "" {
		cfg.ListenAddress = listenAddress
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("starting threadnetd",
		"version", version.Version, "commit", version.GitCommit)

	audit, closeAudit, err := newAuditLogger(cfg.AuditLog, logger)
	if err != nil {
		return err
	}
	defer closeAudit()

	state := persistence.NewDatasetStateStore(filepath.Join(cfg.StateDir, "datasets.json"))
	store, err := dataset.NewStore(state, logger)
	if err != nil {
		return err
	}
	logger.Info("dataset store loaded", "datasets", store.Len())

	hub := api.NewRouterHub(discovery.Config{
		Browser: discovery.NewMDNSBrowser(discovery.BrowserConfig{
			Interface: cfg.Discovery.Interface,
		}),
		ResolveTimeout: cfg.Discovery.ResolveTimeout.Std(),
		Logger:         logger,
		Audit:          audit,
	})

	server := api.NewServer(api.ServerConfig{
		ListenAddress: cfg.ListenAddress,
		Store:         store,
		Hub:           hub,
		Version:       version.Version,
		Logger:        logger,
		Audit:         audit,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("api server shutdown failed", "error", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("threadnetd %s (built %s, commit %s)\n",
			version.Version, version.BuildDate, version.GitCommit)
	},
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newAuditLogger builds the audit pipeline. Events always mirror to the
// operational logger at debug level; when a path is configured they are
// additionally written to a CBOR file readable with 'threadnetd audit'.
func newAuditLogger(path string, logger *slog.Logger) (log.Logger, func(), error) {
	console := log.NewSlogAdapter(logger)
	if path == "" {
		return console, func() {}, nil
	}

	fl, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return log.NewMultiLogger(fl, console), func() { fl.Close() }, nil
}
