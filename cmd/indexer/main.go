package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aegis-protocol/aegis-indexer/internal/common"
	"github.com/aegis-protocol/aegis-indexer/internal/config"
	"github.com/aegis-protocol/aegis-indexer/internal/db"
	"github.com/aegis-protocol/aegis-indexer/internal/logger"
	"github.com/aegis-protocol/aegis-indexer/internal/metrics"
	"github.com/aegis-protocol/aegis-indexer/internal/projector"
	"github.com/aegis-protocol/aegis-indexer/internal/rpc"
	syncer "github.com/aegis-protocol/aegis-indexer/internal/sync"
	"github.com/aegis-protocol/aegis-indexer/pkg/api"
)

const version = "1.0.0"

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "aegis-indexer",
	Short: "Aegis marketplace event indexer",
	Long: `aegis-indexer follows the Aegis marketplace contracts on chain, decodes
their events and projects them into a queryable SQLite database with an
append-only audit trail, aggregate statistics and a read-only HTTP API.`,
	Version: version,
	RunE:    runIndexer,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
}

func runIndexer(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	log := logger.NewComponentLoggerFromConfig(common.ComponentSyncer, cfg.Logging)
	logger.SetDefaultLogger(log)
	defer func() { _ = log.Close() }()

	log.Infof("Starting aegis-indexer v%s", version)

	database, err := db.NewSQLiteDBFromConfig(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	proj, err := projector.New(
		database,
		cfg,
		logger.NewComponentLoggerFromConfig(common.ComponentProjector, cfg.Logging),
	)
	if err != nil {
		return fmt.Errorf("failed to create projector: %w", err)
	}

	log.Infof("Connecting to Ethereum node at %s", cfg.Sync.RPCURL)
	ethClient, err := rpc.NewClient(ctx, cfg.Sync.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to create RPC client: %w", err)
	}
	defer ethClient.Close()

	group, groupCtx := errgroup.WithContext(ctx)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(
			cfg.Metrics,
			logger.NewComponentLoggerFromConfig(common.ComponentMetrics, cfg.Logging),
		)
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := metricsServer.Stop(context.Background()); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
	}

	if cfg.API != nil && cfg.API.Enabled {
		apiServer := api.NewServer(
			cfg.API,
			database,
			logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging),
		)
		group.Go(func() error {
			return apiServer.Start(groupCtx)
		})
	}

	s := syncer.New(ethClient, database, proj, cfg.Sync,
		logger.NewComponentLoggerFromConfig(common.ComponentSyncer, cfg.Logging))
	group.Go(func() error {
		return s.Run(groupCtx)
	})

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("indexer failed: %w", err)
	}

	log.Info("aegis-indexer stopped")
	return nil
}
