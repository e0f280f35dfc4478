// Package main provides the varviz3d command-line tool.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/varviz3d/varviz3d/internal/config"
	"github.com/varviz3d/varviz3d/internal/duckdb"
	"github.com/varviz3d/varviz3d/internal/service"
	"github.com/varviz3d/varviz3d/internal/uniprot"
	"github.com/varviz3d/varviz3d/internal/variant"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "varviz3d",
		Short: "Aggregate protein variant annotations into per-residue tracks",
		Long: `varviz3d fetches variant and domain annotations from UniProt and the
EMBL-EBI Proteins API, classifies each variant by clinical significance,
and derives smoothed, normalized, and binned per-residue tracks for
2D/3D visualization.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (defaults plus VARVIZ3D_* environment when omitted)")

	root.AddCommand(newServeCmd(&cfgFile))
	root.AddCommand(newTracksCmd(&cfgFile))
	root.AddCommand(newDomainsCmd(&cfgFile))
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newResolveCmd(&cfgFile))
	root.AddCommand(newRSIDCmd(&cfgFile))
	root.AddCommand(newCacheCmd(&cfgFile))
	root.AddCommand(newConfigCmd(&cfgFile))

	return root
}

// app bundles everything a subcommand needs after setup.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	svc     *service.Service
	cleanup func()
}

// setup loads config, builds the logger, and wires the service graph.
func setup(cfgFile string) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	client := uniprot.NewClient(uniprot.Options{
		UniProtBaseURL:  cfg.API.UniProtBaseURL,
		ProteinsBaseURL: cfg.API.ProteinsBaseURL,
		UserAgent:       cfg.API.UserAgent,
		HTTPClient:      &http.Client{Timeout: cfg.API.Timeout},
	})

	fetcher := variant.NewFetcher(client)
	fetcher.SetLogger(logger)

	svc := service.New(client, fetcher)
	svc.SetLogger(logger)
	svc.SetDefaultWindow(cfg.Tracks.Window)

	cleanup := func() { _ = logger.Sync() }
	if cfg.Cache.Enabled {
		store, err := duckdb.Open(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		svc.SetCache(store)
		cleanup = func() {
			store.Close()
			_ = logger.Sync()
		}
	}

	return &app{cfg: cfg, logger: logger, svc: svc, cleanup: cleanup}, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
