package pipeline

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Result is the score of one candidate on one task.
type Result struct {
	Dataset          string
	Model            string
	Accuracy         float64
	TPR              float64
	TNR              float64
	BalancedAccuracy float64
	Precision        float64
	F1               float64
	FitTime          time.Duration
}

// Header names the CSV columns written by WriteCSV.
var Header = []string{"dataset", "model", "accuracy", "tpr", "tnr", "balanced_accuracy", "precision", "f1", "fit_ms"}

func (r Result) record() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		r.Dataset,
		r.Model,
		f(r.Accuracy),
		f(r.TPR),
		f(r.TNR),
		f(r.BalancedAccuracy),
		f(r.Precision),
		f(r.F1),
		f(float64(r.FitTime) / float64(time.Millisecond)),
	}
}

// WriteCSV writes a header row followed by one row per result.
func WriteCSV(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return errors.Wrap(err, "pipeline: write header")
	}
	for _, r := range results {
		if err := writer.Write(r.record()); err != nil {
			return errors.Wrap(err, "pipeline: write row")
		}
	}
	writer.Flush()
	return writer.Error()
}
