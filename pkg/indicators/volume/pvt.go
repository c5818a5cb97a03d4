package volume

import (
	"github.com/vadiminshakov/volind/pkg/indicators/momentum"
	"github.com/vadiminshakov/volind/pkg/series"
)

// PVTOptions configures PVT.
type PVTOptions struct {
	Options
	// Drift is the lag of the rate of change. Defaults to 1.
	Drift int
}

// PVT calculates the Price-Volume Trend, the running total of volume
// weighted by the rate of change of close:
//
//	PVT = cumsum(ROC(close, drift) * volume)
//
// The first drift samples are missing.
func PVT(close, vol series.Series, opts PVTOptions) (Result, error) {
	length := series.ResolveLength(opts.Length, close.Len())
	drift := series.ResolveDrift(opts.Drift)

	in, err := prepare(opts.Options, length, close, vol)
	if err != nil {
		return Result{}, wrap(err, "PVT")
	}
	close, vol = in[0], in[1]

	pv := series.Mul(momentum.ROC(close, drift), vol)

	return finish(series.CumSum(pv), "PVT", opts.Options), nil
}
