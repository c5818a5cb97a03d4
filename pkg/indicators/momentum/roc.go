// Package momentum holds the momentum helpers volume indicators build on.
package momentum

import (
	"fmt"
	"math"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"

	"github.com/vadiminshakov/volind/pkg/series"
)

// ROC calculates the rate of change of s over length periods as a fraction:
//
//	ROC[i] = (s[i] - s[i-length]) / s[i-length]
//
// The first length samples are missing. A non-positive length is treated as 1.
// A zero previous sample yields ±Inf (NaN for 0/0).
func ROC(s series.Series, length int) series.Series {
	length = series.ResolveDrift(length)

	var values []float64
	if cinarSupports(s.Values, length) {
		values = cinarROC(s.Values, length)
	} else {
		values = nativeROC(s.Values, length)
	}

	out := series.NewWithIndex(fmt.Sprintf("ROC_%d", length), s.Index, values)
	if len(s.Index) != len(values) {
		out.Index = nil
	}
	return out
}

// cinarSupports reports whether trend.Roc reproduces nativeROC: it maps a
// zero previous sample to 0 instead of ±Inf and carries NaN forward.
func cinarSupports(values []float64, length int) bool {
	if len(values) <= length {
		return false
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if i < len(values)-length && v == 0 {
			return false
		}
	}
	return true
}

func cinarROC(values []float64, length int) []float64 {
	roc := trend.NewRocWithPeriod[float64](length)
	out := helper.ChanToSlice(roc.Compute(helper.SliceToChan(values)))

	// the idle period is skipped by the library
	result := make([]float64, len(values))
	pad := len(result) - len(out)
	if pad < 0 {
		out = out[-pad:]
		pad = 0
	}
	for i := range result {
		if i < pad {
			result[i] = math.NaN()
			continue
		}
		result[i] = out[i-pad]
	}
	return result
}

func nativeROC(values []float64, length int) []float64 {
	result := make([]float64, len(values))
	for i := range result {
		if i < length {
			result[i] = math.NaN()
			continue
		}
		p := values[i-length]
		result[i] = (values[i] - p) / p
	}
	return result
}
