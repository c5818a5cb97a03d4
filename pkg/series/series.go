// Package series provides the index-aligned numeric series shared by the
// indicator packages together with the utilities every indicator runs its
// inputs through: validation, trimming, shifting, filling and a few common
// elementwise transforms.
package series

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Series is an ordered sequence of numeric samples.
// Missing samples are stored as NaN.
type Series struct {
	// Name is the label of the series, e.g. "close" or "AD_20".
	Name string
	// Index holds the timestamp of each sample. Nil means positional.
	Index []time.Time
	// Values holds the samples.
	Values []float64
}

// New creates a series that owns a copy of values.
func New(name string, values []float64) Series {
	return Series{Name: name, Values: cloneFloats(values)}
}

// NewWithIndex creates a series that owns copies of index and values.
func NewWithIndex(name string, index []time.Time, values []float64) Series {
	return Series{Name: name, Index: cloneTimes(index), Values: cloneFloats(values)}
}

// FromDecimals converts decimal samples into a series.
func FromDecimals(name string, decimals []decimal.Decimal) Series {
	values := make([]float64, len(decimals))
	for i, d := range decimals {
		values[i], _ = d.Float64()
	}
	return Series{Name: name, Values: values}
}

// Decimals converts the series into nullable decimals. Missing and infinite
// samples become invalid entries.
func (s Series) Decimals() []decimal.NullDecimal {
	result := make([]decimal.NullDecimal, len(s.Values))
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		result[i] = decimal.NewNullDecimal(decimal.NewFromFloat(v))
	}
	return result
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s.Values)
}

// At returns the sample at position i or NaN when i is out of range.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s.Values) {
		return math.NaN()
	}
	return s.Values[i]
}

// Clone returns a deep copy.
func (s Series) Clone() Series {
	return Series{Name: s.Name, Index: cloneTimes(s.Index), Values: cloneFloats(s.Values)}
}

// Tail returns a copy of the last n samples. A non-positive n or an n larger
// than the series returns a full copy.
func (s Series) Tail(n int) Series {
	if n <= 0 || n >= len(s.Values) {
		return s.Clone()
	}
	from := len(s.Values) - n
	out := Series{Name: s.Name, Values: cloneFloats(s.Values[from:])}
	if len(s.Index) == len(s.Values) {
		out.Index = cloneTimes(s.Index[from:])
	}
	return out
}

// Rename returns a copy of the series carrying name.
func (s Series) Rename(name string) Series {
	out := s.Clone()
	out.Name = name
	return out
}

// withValues returns a series that shares nothing with s except its index
// timestamps, which are copied.
func (s Series) withValues(name string, values []float64) Series {
	out := Series{Name: name, Values: values}
	if len(s.Index) == len(values) {
		out.Index = cloneTimes(s.Index)
	}
	return out
}

// CountMissing returns the number of NaN samples.
func (s Series) CountMissing() int {
	n := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

func cloneFloats(values []float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

func cloneTimes(index []time.Time) []time.Time {
	if index == nil {
		return nil
	}
	out := make([]time.Time, len(index))
	copy(out, index)
	return out
}
