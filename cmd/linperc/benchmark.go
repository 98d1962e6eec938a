package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/pipeline"
)

func benchmarkCMD() *cobra.Command {
	var (
		trainFiles []string
		testFiles  []string
		outPath    string
	)
	cmd := &cobra.Command{
		Use:   "benchmark --train a.csv,b.csv --test a_test.csv,b_test.csv",
		Short: "score the single classifier and the ensemble on several datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(trainFiles) == 0 || len(trainFiles) != len(testFiles) {
				return errors.Errorf("need matching --train and --test lists, got %d and %d", len(trainFiles), len(testFiles))
			}
			cfg, logger, err := setup("benchmark")
			if err != nil {
				return err
			}

			tasks := make([]pipeline.Task, len(trainFiles))
			for i := range trainFiles {
				train, err := data.LoadCSV(trainFiles[i], headerFlag)
				if err != nil {
					return err
				}
				test, err := data.LoadCSV(testFiles[i], headerFlag)
				if err != nil {
					return err
				}
				name := strings.TrimSuffix(filepath.Base(trainFiles[i]), filepath.Ext(trainFiles[i]))
				tasks[i] = pipeline.Task{Name: name, Train: train, Test: test}
			}

			var candidates []pipeline.Candidate
			for _, kind := range []string{kindSingle, kindEnsemble} {
				c, err := candidate(cfg, kind, logger)
				if err != nil {
					return err
				}
				candidates = append(candidates, c)
			}

			results, err := pipeline.NewPipeline(logger, candidates...).Run(cmd.Context(), tasks...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return errors.Wrap(err, "create results file")
				}
				defer file.Close()
				out = file
			}
			if err := pipeline.WriteCSV(out, results); err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "results saved to %s\n", outPath)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVar(&trainFiles, "train", nil, "training CSV files")
	flags.StringSliceVar(&testFiles, "test", nil, "test CSV files, in the same order as --train")
	flags.StringVarP(&outPath, "output", "o", "", "results CSV (default stdout)")
	return cmd
}
