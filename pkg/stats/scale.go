package stats

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/amyap6/Perceptrons/pkg/data"
)

var (
	ErrDegenerateStandardization = errors.New("stats: zero standard deviation")
	ErrNotFitted                 = errors.New("stats: standardizer is not fitted")
)

// Mode selects the standardization formula.
type Mode int

const (
	// ZScore computes (v - mean) / std.
	ZScore Mode = iota
	// Legacy computes v - mean/std. It exists to reproduce older benchmark
	// numbers and is not a real standardization.
	Legacy
)

// DegeneratePolicy decides what happens to a column with zero variance.
type DegeneratePolicy int

const (
	// FailOnDegenerate makes Fit return ErrDegenerateStandardization.
	FailOnDegenerate DegeneratePolicy = iota
	// CenterDegenerate treats the deviation as 1, so a constant column maps to 0 under ZScore.
	CenterDegenerate
)

// Standardizer holds per-feature population mean and standard deviation.
// After Fit it is read-only and safe for concurrent Transform calls.
type Standardizer struct {
	Mean   []float64
	Std    []float64
	Mode   Mode
	Policy DegeneratePolicy
	fit    bool
}

func NewStandardizer(mode Mode, policy DegeneratePolicy) *Standardizer {
	return &Standardizer{Mode: mode, Policy: policy}
}

// Fit computes the column statistics of X.
func (s *Standardizer) Fit(X [][]float64) error {
	if len(X) == 0 {
		return data.ErrEmptyDataset
	}
	r, c := len(X), len(X[0])
	for i, row := range X {
		if len(row) != c {
			return errors.Wrapf(data.ErrDimensionMismatch, "row %d has %d values, want %d", i, len(row), c)
		}
	}
	mean := make([]float64, c)
	std := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			col[i] = X[i][j]
		}
		mean[j], std[j] = stat.PopMeanStdDev(col, nil)
		if !(std[j] > 0) {
			if s.Policy == FailOnDegenerate {
				return errors.Wrapf(ErrDegenerateStandardization, "column %d is constant (%g)", j, mean[j])
			}
			std[j] = 1
		}
	}
	s.Mean, s.Std = mean, std
	s.fit = true
	return nil
}

// Fitted reports whether Fit succeeded.
func (s *Standardizer) Fitted() bool { return s.fit }

func (s *Standardizer) scale(j int, v float64) float64 {
	if s.Mode == Legacy {
		return v - s.Mean[j]/s.Std[j]
	}
	return (v - s.Mean[j]) / s.Std[j]
}

// Scale maps raw value v of feature j into standardized space.
func (s *Standardizer) Scale(j int, v float64) float64 { return s.scale(j, v) }

// Invert maps standardized value z of feature j back to raw space.
func (s *Standardizer) Invert(j int, z float64) float64 {
	if s.Mode == Legacy {
		return z + s.Mean[j]/s.Std[j]
	}
	return s.Mean[j] + s.Std[j]*z
}

// TransformInPlace rewrites x with the fitted parameters.
func (s *Standardizer) TransformInPlace(x []float64) {
	for j := range x {
		x[j] = s.scale(j, x[j])
	}
}

// Transform returns a standardized copy of X. X is returned unchanged before Fit.
func (s *Standardizer) Transform(X [][]float64) [][]float64 {
	if !s.fit {
		return X
	}
	Y := make([][]float64, len(X))
	for i, row := range X {
		Y[i] = append([]float64(nil), row...)
		s.TransformInPlace(Y[i])
	}
	return Y
}

func (s *Standardizer) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X), nil
}

// FitDataset fits on ds and returns a standardized copy of it.
func (s *Standardizer) FitDataset(ds *data.Dataset) (*data.Dataset, error) {
	X, _ := ds.Matrix()
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.TransformDataset(ds)
}

// TransformDataset returns a standardized copy of ds.
func (s *Standardizer) TransformDataset(ds *data.Dataset) (*data.Dataset, error) {
	if !s.fit {
		return nil, ErrNotFitted
	}
	out := ds.Clone()
	for i := range out.Instances {
		if len(out.Instances[i].Features) != len(s.Mean) {
			return nil, errors.Wrapf(data.ErrDimensionMismatch, "instance %d", i)
		}
		s.TransformInPlace(out.Instances[i].Features)
	}
	return out, nil
}
