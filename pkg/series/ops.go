package series

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon replaces zero differences in NonZeroRange so that dividing by a
// price range never divides by zero.
const Epsilon = 2.220446049250313e-16

// Sub returns a - b elementwise.
func Sub(a, b Series) Series {
	return binary(a, b, fmt.Sprintf("%s-%s", a.Name, b.Name), floats.SubTo, func(x, y float64) float64 { return x - y })
}

// Add returns a + b elementwise.
func Add(a, b Series) Series {
	return binary(a, b, fmt.Sprintf("%s+%s", a.Name, b.Name), floats.AddTo, func(x, y float64) float64 { return x + y })
}

// Mul returns a * b elementwise.
func Mul(a, b Series) Series {
	return binary(a, b, fmt.Sprintf("%s*%s", a.Name, b.Name), floats.MulTo, func(x, y float64) float64 { return x * y })
}

// Div returns a / b elementwise.
func Div(a, b Series) Series {
	return binary(a, b, fmt.Sprintf("%s/%s", a.Name, b.Name), floats.DivTo, func(x, y float64) float64 { return x / y })
}

// Scale returns c * s.
func Scale(c float64, s Series) Series {
	values := cloneFloats(s.Values)
	floats.Scale(c, values)
	return s.withValues(s.Name, values)
}

// binary applies op to equal-length inputs through the vectorised gonum
// kernel. Inputs of different length are aligned on their most recent
// samples and positions b cannot cover become NaN; the result always has
// the length of a.
func binary(a, b Series, name string, vec func(dst, s, t []float64) []float64, op func(x, y float64) float64) Series {
	if a.Len() == b.Len() {
		values := make([]float64, a.Len())
		vec(values, a.Values, b.Values)
		return a.withValues(name, values)
	}

	values := make([]float64, a.Len())
	shift := b.Len() - a.Len()
	for i := range values {
		j := i + shift
		if j < 0 || j >= b.Len() {
			values[i] = math.NaN()
			continue
		}
		values[i] = op(a.Values[i], b.Values[j])
	}
	return a.withValues(name, values)
}

// NonZeroRange returns a - b with every exact zero difference replaced by
// Epsilon.
func NonZeroRange(a, b Series) Series {
	diff := Sub(a, b)
	for i, v := range diff.Values {
		if v == 0 {
			diff.Values[i] = Epsilon
		}
	}
	return diff
}

// SignedSeries returns the sign of the first difference of s: 1 for a rise,
// -1 for a fall and 0 when unchanged. The first sample is set to initial.
// Differences involving a missing sample stay missing.
func SignedSeries(s Series, initial float64) Series {
	values := make([]float64, s.Len())
	for i := range values {
		if i == 0 {
			values[i] = initial
			continue
		}
		d := s.Values[i] - s.Values[i-1]
		switch {
		case math.IsNaN(d):
			values[i] = math.NaN()
		case d > 0:
			values[i] = 1
		case d < 0:
			values[i] = -1
		default:
			values[i] = 0
		}
	}
	return s.withValues(s.Name+"_sign", values)
}

// Shift moves every sample k positions forward (k > 0) or backward (k < 0).
// Exposed positions become NaN; the length is unchanged.
func Shift(s Series, k int) Series {
	if k == 0 {
		return s.Clone()
	}
	values := make([]float64, s.Len())
	for i := range values {
		j := i - k
		if j < 0 || j >= s.Len() {
			values[i] = math.NaN()
			continue
		}
		values[i] = s.Values[j]
	}
	return s.withValues(s.Name, values)
}

// CumSum returns the running total of s. Missing samples stay missing and
// do not interrupt the total.
func CumSum(s Series) Series {
	values := make([]float64, s.Len())
	var total float64
	for i, v := range s.Values {
		if math.IsNaN(v) {
			values[i] = math.NaN()
			continue
		}
		total += v
		values[i] = total
	}
	return s.withValues(s.Name, values)
}

// Diff returns s[i] - s[i-lag]. The first lag samples are NaN.
func Diff(s Series, lag int) Series {
	return Sub(s, Shift(s, lag)).Rename(s.Name)
}
