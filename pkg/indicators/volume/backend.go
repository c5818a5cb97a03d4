package volume

import (
	"github.com/vadiminshakov/volind/pkg/series"
)

// ADBackend computes Accumulation/Distribution from high, low, close and
// volume series of equal length.
type ADBackend interface {
	// Name identifies the backend in results and logs.
	Name() string
	// Supports reports whether the backend produces the same values as the
	// native computation for these inputs.
	Supports(high, low, close, vol series.Series) bool
	// Compute returns the cumulative AD line.
	Compute(high, low, close, vol series.Series) series.Series
}

// accelerated is the third-party backend linked into the binary, if any.
// It is assigned once during package initialisation.
var accelerated ADBackend

// FastPathAvailable reports whether an accelerated AD backend is linked in.
func FastPathAvailable() bool {
	return accelerated != nil
}

// Native returns the backend that evaluates the AD formula directly.
func Native() ADBackend {
	return nativeAD{}
}

// selectADBackend picks the accelerated backend unless it is disabled,
// missing or unable to reproduce the native result for these inputs.
func selectADBackend(disableFastPath bool, high, low, close, vol series.Series) ADBackend {
	if disableFastPath || accelerated == nil {
		return nativeAD{}
	}
	if !accelerated.Supports(high, low, close, vol) {
		return nativeAD{}
	}
	return accelerated
}

type nativeAD struct{}

func (nativeAD) Name() string { return "native" }

func (nativeAD) Supports(_, _, _, _ series.Series) bool { return true }

func (nativeAD) Compute(high, low, close, vol series.Series) series.Series {
	return accumulate(high, low, close, vol, nil)
}

// accumulate evaluates
//
//	mf  = close - open            (open given)
//	mf  = 2*close - high - low    (otherwise)
//	AD  = cumsum(mf * volume / nonzero(high - low))
func accumulate(high, low, close, vol series.Series, open *series.Series) series.Series {
	var moneyFlow series.Series
	if open != nil {
		moneyFlow = series.NonZeroRange(close, *open)
	} else {
		moneyFlow = series.Sub(series.Sub(series.Scale(2, close), high), low)
	}

	hlRange := series.NonZeroRange(high, low)
	term := series.Mul(moneyFlow, series.Div(vol, hlRange))

	return series.CumSum(term)
}
