package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/zvmtrace/db"
	"github.com/ethpandaops/zvmtrace/metrics"
	"github.com/ethpandaops/zvmtrace/services"
	"github.com/ethpandaops/zvmtrace/types"
	"github.com/ethpandaops/zvmtrace/utils"
)

var configPath string
var logWriter *utils.LogWriter

var rootCmd = &cobra.Command{
	Use:   "zvmtrace",
	Short: "zkVM transaction trace formatter & system contract tooling",
	Long:  "Renders zkVM execution traces (call trees, events, storage logs) in a human readable way and inspects the node's system contract bundles",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logWriter != nil {
			logWriter.Dispose()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file, if empty string defaults will be used")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp() {
	cfg := &types.Config{}
	err := utils.ReadConfig(cfg, configPath)
	if err != nil {
		logrus.Fatalf("error reading config file: %v", err)
	}
	utils.Config = cfg

	writer, logger := utils.InitLogger()
	logWriter = writer

	logger.WithFields(logrus.Fields{
		"config":  configPath,
		"version": utils.BuildVersion,
		"release": utils.BuildRelease,
	}).Printf("starting")

	if cfg.Database.Enabled {
		db.MustInitDB()
		err = db.ApplyEmbeddedDbSchema(-2)
		if err != nil {
			logger.Fatalf("error initializing db schema: %v", err)
		}
	}

	err = services.StartSelectorResolverService(cfg.Database.Enabled)
	if err != nil {
		logger.Fatalf("error starting selector resolver service: %v", err)
	}

	if cfg.Metrics.Enabled {
		err = metrics.StartMetricsServer(logger, cfg.Metrics.Host, cfg.Metrics.Port)
		if err != nil {
			logger.Fatalf("error starting metrics server: %v", err)
		}
	}
}
