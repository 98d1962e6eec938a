package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/loader"
	"github.com/amyap6/Perceptrons/pkg/model"
)

// generateBinaryData creates a noisy, roughly linear binary dataset.
// Rule: class 1 if x1 + 2*x2 - x3 > 0, with 5% of labels flipped.
func generateBinaryData(rnd *rand.Rand, n, d int) (X [][]float64, y []int) {
	X = make([][]float64, n)
	y = make([]int, n)
	for i := 0; i < n; i++ {
		x := make([]float64, d)
		for j := range x {
			x[j] = rnd.Float64()*2 - 1 // [-1,1]
		}
		X[i] = x
		if x[0]+2*x[1]-x[2] > 0 {
			y[i] = 1
		}
		if rnd.Float64() < 0.05 {
			y[i] = 1 - y[i]
		}
	}
	return
}

func main() {
	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	fmt.Println("=== Bagged Perceptron Ensemble Demo with Train/Test Split ===")

	// Step 1. Generate dataset
	X, y := generateBinaryData(rnd, 1000, 6)
	fmt.Printf("Generated %d samples with %d features each.\n", len(X), len(X[0]))

	// Step 2. Split into train/test sets
	ds, err := data.FromMatrix(X, y)
	if err != nil {
		panic(err)
	}
	trainIdx, testIdx := loader.TrainTestSplit(ds.Len(), 0.3, rnd)
	train, test := ds.Subset(trainIdx), ds.Subset(testIdx)
	fmt.Printf("\nTrain size: %d, Test size: %d\n", train.Len(), test.Len())

	// Step 3. Initialize ensemble
	ens := model.NewBaggedEnsemble(
		model.WithSize(50),
		model.WithProportion(0.5), // each member sees half of the features
		model.WithRandomState(seed),
	)
	fmt.Println("\nInitialized ensemble with 50 perceptrons, 50% of features each.")

	// Step 4. Train on training data
	fmt.Println("Training ensemble...")
	start := time.Now()
	if err := ens.Fit(context.Background(), train); err != nil {
		panic(fmt.Sprintf("training failed: %v", err))
	}
	fmt.Printf("Training complete in %v.\n", time.Since(start))

	// Step 5. Predict on test data
	XTest, yTest := test.Matrix()
	testPreds, err := ens.PredictBatch(XTest)
	if err != nil {
		panic(err)
	}

	// Step 6. Show some example predictions with their vote split
	fmt.Println("First 10 test predictions (votes for 0/1 → Pred vs True):")
	for i := 0; i < 10 && i < len(XTest); i++ {
		votes, _ := ens.Votes(XTest[i])
		fmt.Printf("  votes=%v → Pred=%d, True=%d\n", votes, testPreds[i], yTest[i])
	}

	// Step 7. Compare against a single classifier
	single := model.NewLinearClassifier(model.WithSeed(seed))
	if err := single.Fit(context.Background(), train); err != nil {
		panic(err)
	}
	singlePreds, err := single.PredictBatch(XTest)
	if err != nil {
		panic(err)
	}

	cm := model.ConfusionMatrix(yTest, testPreds)
	fmt.Printf("\nEnsemble accuracy: %.2f%% (balanced %.2f%%)\n", model.Accuracy(yTest, testPreds)*100, model.BalancedAccuracy(cm)*100)
	fmt.Printf("Single perceptron accuracy: %.2f%%\n", model.Accuracy(yTest, singlePreds)*100)
}
