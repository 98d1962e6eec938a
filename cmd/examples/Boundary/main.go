package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/amyap6/Perceptrons/pkg/data"
	"github.com/amyap6/Perceptrons/pkg/model"
	"github.com/amyap6/Perceptrons/pkg/optim"
)

// generateSeparableData creates n points on either side of the line x2 = slope*x1 + offset.
func generateSeparableData(rnd *rand.Rand, n int, slope, offset, margin float64) (X [][]float64, y []int) {
	X = make([][]float64, 0, n)
	y = make([]int, 0, n)
	for len(X) < n {
		x1 := rnd.Float64()*10 - 5 // [-5,5]
		x2 := rnd.Float64()*10 - 5
		d := x2 - (slope*x1 + offset)
		if math.Abs(d) < margin {
			continue
		}
		X = append(X, []float64{x1, x2})
		if d > 0 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}
	return
}

// boundaryX2 solves the decision rule w·z + b = Σw for the second feature,
// mapping the standardized boundary back to raw feature space.
func boundaryX2(clf *model.LinearClassifier, x1 float64) float64 {
	w := clf.Weights()
	s := clf.Standardizer()
	z1 := x1
	if s != nil {
		z1 = s.Scale(0, x1)
	}
	z2 := (w.W[0] + w.W[1] - w.B - w.W[0]*z1) / w.W[1]
	if s == nil {
		return z2
	}
	return s.Invert(1, z2)
}

// plotBoundary draws both classes and the learned decision line.
func plotBoundary(X [][]float64, y []int, clf *model.LinearClassifier, title, filename string) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Feature 1"
	p.Y.Label.Text = "Feature 2"

	colors := []color.RGBA{
		{R: 255, A: 255},
		{B: 255, A: 255, R: 50, G: 50},
	}
	glyphs := []draw.GlyphDrawer{draw.CircleGlyph{}, draw.TriangleGlyph{}}
	for class := 0; class < 2; class++ {
		pts := make(plotter.XYs, 0)
		for i := range X {
			if y[i] == class {
				pts = append(pts, plotter.XY{X: X[i][0], Y: X[i][1]})
			}
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			log.Fatal(err)
		}
		s.Color = colors[class]
		s.Shape = glyphs[class]
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("class %d", class), s)
	}

	linePts := plotter.XYs{
		{X: -5, Y: boundaryX2(clf, -5)},
		{X: 5, Y: boundaryX2(clf, 5)},
	}
	l, err := plotter.NewLine(linePts)
	if err != nil {
		log.Fatal(err)
	}
	l.Color = color.RGBA{A: 255}
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)
	p.Y.Min, p.Y.Max = -5, 5

	if err := p.Save(4*vg.Inch, 4*vg.Inch, filename); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Saved decision boundary plot to %s\n", filename)
}

func main() {
	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	X, y := generateSeparableData(rnd, 300, 0.8, 0.5, 0.3)
	ds, err := data.FromMatrix(X, y)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Generated %d separable samples with 2 features.\n", ds.Len())

	for _, alg := range []optim.Algorithm{optim.Online, optim.Batch} {
		start := time.Now()
		clf := model.NewLinearClassifier(
			model.WithAlgorithm(alg),
			model.WithBias(true),
			model.WithSeed(seed),
		)
		if err := clf.Fit(context.Background(), ds); err != nil {
			log.Fatal(err)
		}
		res := clf.Result()
		Xm, ym := ds.Matrix()
		pred, err := clf.PredictBatch(Xm)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %d epochs (converged=%v) in %v, training accuracy %.2f%%\n",
			alg, res.Epochs, res.Converged, time.Since(start), model.Accuracy(ym, pred)*100)
		plotBoundary(X, y, clf, fmt.Sprintf("Perceptron boundary (%s)", alg), fmt.Sprintf("boundary_%s.png", alg))
	}
}
