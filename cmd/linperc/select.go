package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amyap6/Perceptrons/pkg/config"
	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/model"
	"github.com/amyap6/Perceptrons/pkg/optim"
	"github.com/amyap6/Perceptrons/pkg/stats"
)

func selectCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "select <data.csv>",
		Short: "compare online and batch training by cross-validation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup("select")
			if err != nil {
				return err
			}
			ds, err := data.LoadCSV(args[0], headerFlag)
			if err != nil {
				return err
			}
			report, err := model.NewModelSelector(foldFactory(cfg), logger).Select(cmd.Context(), ds)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "folds:  %d\n", report.Folds)
			fmt.Fprintf(out, "online: %.2f%%\n", report.OnlineAccuracy)
			fmt.Fprintf(out, "batch:  %.2f%%\n", report.BatchAccuracy)
			fmt.Fprintf(out, "chosen: %s\n", report.Chosen)
			return nil
		},
	}
}

// foldFactory builds the per-fold classifiers. A column may be constant
// inside one fold only, so fold models center such columns.
func foldFactory(cfg config.Config) func(optim.Algorithm) model.Classifier {
	return func(a optim.Algorithm) model.Classifier {
		opts := append(cfg.ClassifierOptions(),
			model.WithModelSelection(false),
			model.WithAlgorithm(a),
			model.WithDegeneratePolicy(stats.CenterDegenerate))
		return model.NewLinearClassifier(opts...)
	}
}
