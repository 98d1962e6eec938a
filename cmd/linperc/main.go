package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amyap6/Perceptrons/pkg/config"
	"github.com/amyap6/Perceptrons/pkg/logging"
)

var (
	cfgPathFlag string
	headerFlag  bool
)

var mainCmd = &cobra.Command{
	Use:          "linperc",
	Short:        "linear perceptron classifiers and ensembles",
	SilenceUsage: true,
}

func init() {
	flags := mainCmd.PersistentFlags()
	flags.StringVarP(&cfgPathFlag, "config", "c", "", "optional YAML file overlaid on LINPERC_* settings")
	flags.BoolVar(&headerFlag, "header", true, "CSV files start with a header row")
}

// setup loads the configuration and a logger at its level.
func setup(component string) (config.Config, zerolog.Logger, error) {
	logging.SetupLogging()
	cfg, err := config.Load(cfgPathFlag)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return cfg, logging.NewLoggerTo(os.Stderr, component, logging.ParseLevel(cfg.LogLevel)), nil
}

func main() {
	mainCmd.AddCommand(evaluateCMD(), selectCMD(), benchmarkCMD())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if mainCmd.ExecuteContext(ctx) != nil {
		os.Exit(1)
	}
}
