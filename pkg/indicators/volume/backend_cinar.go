//go:build !noaccel

package volume

import (
	"math"

	"github.com/cinar/indicator/v2/helper"
	cinarvolume "github.com/cinar/indicator/v2/volume"
	"gonum.org/v1/gonum/floats"

	"github.com/vadiminshakov/volind/pkg/series"
)

// Build with -tags noaccel to leave the cinar backend out and always use
// the native computation.
func init() {
	accelerated = cinarAD{}
}

// cinarAD delegates AD to github.com/cinar/indicator.
type cinarAD struct{}

func (cinarAD) Name() string { return "cinar" }

// Supports rejects inputs the channel pipeline would turn into NaN for the
// rest of the cumulative line: missing or infinite samples and bars with a
// zero high-low range.
func (cinarAD) Supports(high, low, close, vol series.Series) bool {
	n := high.Len()
	if low.Len() != n || close.Len() != n || vol.Len() != n {
		return false
	}
	for _, s := range [][]float64{high.Values, low.Values, close.Values, vol.Values} {
		if floats.HasNaN(s) {
			return false
		}
		for _, v := range s {
			if math.IsInf(v, 0) {
				return false
			}
		}
	}
	for i := 0; i < n; i++ {
		if high.Values[i] == low.Values[i] {
			return false
		}
	}
	return true
}

func (cinarAD) Compute(high, low, close, vol series.Series) series.Series {
	ad := cinarvolume.NewAd[float64]()
	out := helper.ChanToSlice(ad.Compute(
		helper.SliceToChan(high.Values),
		helper.SliceToChan(low.Values),
		helper.SliceToChan(close.Values),
		helper.SliceToChan(vol.Values),
	))

	// keep the result aligned with the inputs if the library skips warmup samples
	values := make([]float64, high.Len())
	pad := len(values) - len(out)
	if pad < 0 {
		out = out[-pad:]
		pad = 0
	}
	for i := range values {
		if i < pad {
			values[i] = math.NaN()
			continue
		}
		values[i] = out[i-pad]
	}

	return series.NewWithIndex(high.Name, high.Index, values)
}
