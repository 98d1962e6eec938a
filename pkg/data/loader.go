package data

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/sjwhitworth/golearn/base"

	"github.com/amyap6/Perceptrons/pkg/dataprep"
)

// LoadCSV parses a CSV file whose last column is the class. Attribute kinds are
// sniffed by golearn; numeric columns become Continuous, anything else Categorical.
func LoadCSV(path string, hasHeaders bool) (*Dataset, error) {
	grid, err := base.ParseCSVToInstances(path, hasHeaders)
	if err != nil {
		return nil, errors.Wrapf(err, "data: parse %s", path)
	}
	return FromGrid(grid)
}

// FromGrid converts a golearn grid with exactly one class attribute. Labels are
// reduced to {0, 1} with dataprep.BinarizeLabels. Categorical feature values are
// kept as their category index so that Validate can report them.
func FromGrid(grid base.FixedDataGrid) (*Dataset, error) {
	classAttrs := grid.AllClassAttributes()
	if len(classAttrs) != 1 {
		return nil, errors.Errorf("data: want exactly one class attribute, got %d", len(classAttrs))
	}
	featureAttrs := base.NonClassAttributes(grid)
	featureSpecs := base.ResolveAttributes(grid, featureAttrs)
	classSpec, err := grid.GetAttribute(classAttrs[0])
	if err != nil {
		return nil, errors.Wrap(err, "data: resolve class attribute")
	}

	attrs := make([]Attribute, len(featureAttrs))
	for j, a := range featureAttrs {
		attrs[j] = Attribute{Name: a.GetName(), Kind: kindOf(a)}
	}

	_, rows := grid.Size()
	if rows == 0 {
		return nil, ErrEmptyDataset
	}
	instances := make([]Instance, rows)
	labels := make([]string, rows)
	for i := 0; i < rows; i++ {
		x := make([]float64, len(featureSpecs))
		for j, spec := range featureSpecs {
			x[j] = cellValue(featureAttrs[j], grid.Get(spec, i))
		}
		instances[i].Features = x
		labels[i] = labelString(classAttrs[0], grid.Get(classSpec, i))
	}
	for i, y := range dataprep.BinarizeLabels(labels) {
		instances[i].Label = y
	}
	return New(attrs, instances), nil
}

func kindOf(a base.Attribute) Kind {
	if _, ok := a.(*base.FloatAttribute); ok {
		return Continuous
	}
	return Categorical
}

func cellValue(a base.Attribute, raw []byte) float64 {
	if _, ok := a.(*base.FloatAttribute); ok {
		return base.UnpackBytesToFloat(raw)
	}
	return float64(base.UnpackBytesToU64(raw))
}

func labelString(a base.Attribute, raw []byte) string {
	if _, ok := a.(*base.FloatAttribute); ok {
		return strconv.FormatFloat(base.UnpackBytesToFloat(raw), 'g', -1, 64)
	}
	return a.GetStringFromSysVal(raw)
}
