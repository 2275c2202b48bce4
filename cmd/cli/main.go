package main

import (
	"fmt"
	"os"

	"burnoutlens/internal/config"
	"burnoutlens/internal/container"
	"burnoutlens/internal/logging"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	cfgFile  string
	dataFile string
	logLevel string
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "burnoutlens-cli",
		Short: "Explore teacher burnout survey results from the terminal",
		Long: `Segment the teacher burnout survey by demographic, workload and resource filters,
inspect the burnout level distribution of the filtered group and compare its
exhaustion scores with the rest of the sample (Mann-Whitney U).`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "YAML configuration file (default ./burnoutlens.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.dataFile, "data", "", "survey file, overrides data.file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level, overrides log.level")

	rootCmd.AddCommand(
		newOptionsCmd(&flags),
		newReportCmd(&flags),
		newChartCmd(&flags),
		newExploreCmd(&flags),
		newConfigCmd(&flags),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig applies the command-line overrides on top of config.Load
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.cfgFile)
	if err != nil {
		return nil, err
	}
	if flags.dataFile != "" {
		cfg.Data.File = flags.dataFile
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	return cfg, nil
}

// loadContainer wires the application and fails when the dataset is unavailable
func loadContainer(flags *globalFlags) (*container.Container, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	// The CLI logs to stderr in console form so stdout stays clean for reports.
	logger := logging.New(cfg.Log.Level, true)
	c, err := container.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if !c.Ready() {
		return nil, c.LoadErr
	}
	return c, nil
}
