package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/logging"
	"github.com/amyap6/Perceptrons/pkg/model"
)

// generateClassificationData creates two overlapping Gaussian blobs.
func generateClassificationData(rnd *rand.Rand, nSamples, nFeatures int, spread float64) ([][]float64, []int) {
	X := make([][]float64, nSamples)
	y := make([]int, nSamples)

	// Random centers for each class
	centers := make([][]float64, 2)
	for i := range centers {
		centers[i] = make([]float64, nFeatures)
		for j := 0; j < nFeatures; j++ {
			centers[i][j] = rnd.Float64()*10 - 5 // random center between -5 and 5
		}
	}

	for i := 0; i < nSamples; i++ {
		class := rnd.Intn(2)
		X[i] = make([]float64, nFeatures)
		for j := 0; j < nFeatures; j++ {
			X[i][j] = centers[class][j] + rnd.NormFloat64()*spread // noise around center
		}
		y[i] = class
	}

	return X, y
}

func main() {
	logging.SetupLogging()
	logger := logging.NewLogger("selection-demo")
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, spread := range []float64{0.5, 2, 5} {
		X, y := generateClassificationData(rnd, 500, 4, spread)
		ds, err := data.FromMatrix(X, y)
		if err != nil {
			panic(err)
		}

		clf := model.NewLinearClassifier(
			model.WithModelSelection(true),
			model.WithMaxEpochs(200),
			model.WithLogger(logger),
		)
		if err := clf.Fit(context.Background(), ds); err != nil {
			panic(err)
		}
		report, _ := clf.Selection()
		fmt.Printf("spread=%.1f  online=%.2f%%  batch=%.2f%%  chosen=%s  epochs=%d\n",
			spread, report.OnlineAccuracy, report.BatchAccuracy, report.Chosen, clf.Result().Epochs)
	}
}
