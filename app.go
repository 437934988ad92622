package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/logging"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/flag"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile     string
	configErr   error
	v           = viper.New()
	flagService = flag.NewService(v)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "azure-storage-doctor",
		Short: "Compare Azure blob storage and managed disk prices across tiers",
		Long: `Azure Storage Doctor prices every storage account or managed disk of a
resource list under alternative account kinds and disk tiers, using the
Azure Retail Prices catalog, and records the comparison in a resumable
results file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.azure-storage-doctor.yaml)")
	if err := flagService.RegisterFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		newReportCmd(model.ReportBlob),
		newReportCmd(model.ReportDisk),
		newPricesCmd(),
		newInventoryCmd(),
	)

	return rootCmd
}

func initConfig() {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		v.SetConfigFile(filepath.Join(home, ".azure-storage-doctor.yaml"))
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// only an explicitly requested file has to exist
		if cfgFile != "" || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			configErr = fmt.Errorf("failed to read config file: %w", err)
		}
	}
}

// loadRuntime resolves the settings and the logger of a command
func loadRuntime(verbose bool) (config.Config, *zap.Logger, error) {
	if configErr != nil {
		return config.Config{}, nil, configErr
	}

	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, logger, nil
}
