package data

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/amyap6/Perceptrons/pkg/dataprep"
)

var (
	ErrEmptyDataset      = errors.New("data: empty dataset")
	ErrInvalidInputKind  = errors.New("data: non-continuous attribute")
	ErrDimensionMismatch = errors.New("data: feature dimension mismatch")
	ErrInvalidLabel      = errors.New("data: label must be 0 or 1")
	ErrNonFinite         = errors.New("data: non-finite feature value")
)

// Kind describes how the values of an attribute are to be read.
type Kind int

const (
	Continuous Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Attribute is a named feature column.
type Attribute struct {
	Name string
	Kind Kind
}

// Instance is one labeled feature vector. Label is 0 or 1.
type Instance struct {
	Features []float64
	Label    int
}

// Dataset is an ordered set of instances sharing one attribute layout.
type Dataset struct {
	Attributes []Attribute
	Instances  []Instance
}

// New builds a dataset over the given attributes. The instances are used as is.
func New(attrs []Attribute, instances []Instance) *Dataset {
	return &Dataset{Attributes: attrs, Instances: instances}
}

// FromMatrix builds a dataset of continuous attributes named x0..x{p-1}.
// Rows of X are copied.
func FromMatrix(X [][]float64, y []int) (*Dataset, error) {
	if len(X) != len(y) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%d rows but %d labels", len(X), len(y))
	}
	p := 0
	if len(X) > 0 {
		p = len(X[0])
	}
	attrs := make([]Attribute, p)
	for j := range attrs {
		attrs[j] = Attribute{Name: fmt.Sprintf("x%d", j), Kind: Continuous}
	}
	instances := make([]Instance, len(X))
	for i, row := range X {
		instances[i] = Instance{Features: append([]float64(nil), row...), Label: y[i]}
	}
	return New(attrs, instances), nil
}

// Len returns the number of instances.
func (d *Dataset) Len() int { return len(d.Instances) }

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int { return len(d.Attributes) }

// Validate is the capability check run before any training. Only continuous
// attributes, rectangular rows and binary labels are accepted.
func (d *Dataset) Validate() error {
	if d == nil || len(d.Instances) == 0 {
		return ErrEmptyDataset
	}
	for _, a := range d.Attributes {
		if a.Kind != Continuous {
			return errors.Wrapf(ErrInvalidInputKind, "attribute %q is %s", a.Name, a.Kind)
		}
	}
	p := len(d.Attributes)
	for i, inst := range d.Instances {
		if len(inst.Features) != p {
			return errors.Wrapf(ErrDimensionMismatch, "instance %d has %d features, want %d", i, len(inst.Features), p)
		}
		if inst.Label != 0 && inst.Label != 1 {
			return errors.Wrapf(ErrInvalidLabel, "instance %d has label %d", i, inst.Label)
		}
		for j, v := range inst.Features {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Wrapf(ErrNonFinite, "instance %d attribute %q", i, d.Attributes[j].Name)
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	idx := make([]int, len(d.Instances))
	for i := range idx {
		idx[i] = i
	}
	return d.Subset(idx)
}

// Subset returns a deep copy holding the instances at idx, in that order.
func (d *Dataset) Subset(idx []int) *Dataset {
	out := &Dataset{
		Attributes: append([]Attribute(nil), d.Attributes...),
		Instances:  make([]Instance, len(idx)),
	}
	for i, k := range idx {
		src := d.Instances[k]
		out.Instances[i] = Instance{Features: append([]float64(nil), src.Features...), Label: src.Label}
	}
	return out
}

// Project returns a copy restricted to the feature columns in keep, in that order.
func (d *Dataset) Project(keep []int) *Dataset {
	attrs := make([]Attribute, len(keep))
	for j, k := range keep {
		attrs[j] = d.Attributes[k]
	}
	X, y := d.Matrix()
	X = dataprep.FeatureSelect(X, keep)
	out := &Dataset{Attributes: attrs, Instances: make([]Instance, len(X))}
	for i := range X {
		out.Instances[i] = Instance{Features: X[i], Label: y[i]}
	}
	return out
}

// Matrix returns the feature rows and labels. Rows alias the instances.
func (d *Dataset) Matrix() ([][]float64, []int) {
	X := make([][]float64, len(d.Instances))
	y := make([]int, len(d.Instances))
	for i, inst := range d.Instances {
		X[i] = inst.Features
		y[i] = inst.Label
	}
	return X, y
}

// Labels returns the label column.
func (d *Dataset) Labels() []int {
	_, y := d.Matrix()
	return y
}

// ClassCounts returns the number of instances labeled 0 and 1.
func (d *Dataset) ClassCounts() [2]int {
	var counts [2]int
	for _, inst := range d.Instances {
		if inst.Label == 0 || inst.Label == 1 {
			counts[inst.Label]++
		}
	}
	return counts
}
