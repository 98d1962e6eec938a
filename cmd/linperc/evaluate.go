package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amyap6/Perceptrons/pkg/config"
	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/model"
	"github.com/amyap6/Perceptrons/pkg/pipeline"
)

const (
	kindSingle   = "single"
	kindEnsemble = "ensemble"
)

func candidate(cfg config.Config, kind string, logger zerolog.Logger) (pipeline.Candidate, error) {
	switch kind {
	case kindSingle:
		return pipeline.Candidate{Name: kindSingle, New: func() model.BatchClassifier {
			return model.NewLinearClassifier(append(cfg.ClassifierOptions(), model.WithLogger(logger))...)
		}}, nil
	case kindEnsemble:
		return pipeline.Candidate{Name: kindEnsemble, New: func() model.BatchClassifier {
			return model.NewBaggedEnsemble(append(cfg.EnsembleOptions(), model.WithEnsembleLogger(logger))...)
		}}, nil
	}
	return pipeline.Candidate{}, errors.Errorf("unknown model %q, want %s or %s", kind, kindSingle, kindEnsemble)
}

func evaluateCMD() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "evaluate <train.csv> <test.csv>",
		Short: "train on one file and score on another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup("evaluate")
			if err != nil {
				return err
			}
			c, err := candidate(cfg, kind, logger)
			if err != nil {
				return err
			}
			train, err := data.LoadCSV(args[0], headerFlag)
			if err != nil {
				return err
			}
			test, err := data.LoadCSV(args[1], headerFlag)
			if err != nil {
				return err
			}

			results, err := pipeline.NewPipeline(logger, c).Run(cmd.Context(), pipeline.Task{Name: args[0], Train: train, Test: test})
			if err != nil {
				return err
			}
			r := results[0]
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "model:             %s\n", r.Model)
			fmt.Fprintf(out, "accuracy:          %.4f\n", r.Accuracy)
			fmt.Fprintf(out, "tpr:               %.4f\n", r.TPR)
			fmt.Fprintf(out, "tnr:               %.4f\n", r.TNR)
			fmt.Fprintf(out, "balanced accuracy: %.4f\n", r.BalancedAccuracy)
			fmt.Fprintf(out, "precision:         %.4f\n", r.Precision)
			fmt.Fprintf(out, "f1:                %.4f\n", r.F1)
			fmt.Fprintf(out, "fit time:          %v\n", r.FitTime)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "model", "m", kindEnsemble, "single or ensemble")
	return cmd
}
