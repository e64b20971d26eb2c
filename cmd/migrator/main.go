package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tdex-network/tdex-signer/internal/config"
	"github.com/tdex-network/tdex-signer/internal/core/application"
	"github.com/tdex-network/tdex-signer/pkg/stats"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	app = &cobra.Command{
		Use:               "migrator",
		Short:             "hardware wallet migration tool",
		Long:              "this tool moves the funds of a sequence of wallets to their successor addresses and keeps the signer state of stored wallets in sync",
		Version:           formatVersion(),
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	networkFlag string
)

func init() {
	app.PersistentFlags().StringVarP(
		&networkFlag, "network", "n", "", "the network of the wallets, overrides SIGNER_NETWORK",
	)
	app.AddCommand(runCmd, restoreCmd)
}

func main() {
	if err := app.Execute(); err != nil {
		log.Fatal(err)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	if networkFlag != "" {
		config.Set(config.NetworkKey, networkFlag)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	return nil
}

// start returns the validated application config and a context canceled on
// interrupt. Metrics are served for as long as the context lives, if
// enabled.
func start() (*application.Config, context.Context, func(), error) {
	appConfig := config.GetAppConfig()
	if err := appConfig.Validate(); err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)

	if config.GetBool(config.EnableMetricsKey) {
		registry := prometheus.NewRegistry()
		stats.Register(registry)
		go func() {
			if err := stats.Serve(
				ctx, config.GetString(config.MetricsAddrKey), registry,
			); err != nil {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
	}
	if log.GetLevel() >= log.DebugLevel {
		stats.EnableMemoryStatistics(ctx, time.Minute)
	}

	stop := func() {
		cancel()
		appConfig.RepoManager().Close()
	}
	return appConfig, ctx, stop, nil
}

func formatVersion() string {
	return fmt.Sprintf(
		"Version: %s\nCommit: %s\nDate: %s",
		version, commit, date,
	)
}
