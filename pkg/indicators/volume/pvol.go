package volume

import (
	"fmt"

	"github.com/vadiminshakov/volind/pkg/series"
)

// PVOLOptions configures PVOL.
type PVOLOptions struct {
	Options
	// Signed multiplies each product by the sign of the latest close change.
	Signed bool
}

// PVOL calculates Price-Volume, the product of close and volume:
//
//	PVOL = close * volume
//	PVOL = sign(close[i] - close[i-1]) * close * volume   (signed)
//
// The first sample of the signed variant counts as a rise.
func PVOL(close, vol series.Series, opts PVOLOptions) (Result, error) {
	length := series.ResolveLength(opts.Length, close.Len())

	in, err := prepare(opts.Options, length, close, vol)
	if err != nil {
		return Result{}, wrap(err, "PVOL")
	}
	close, vol = in[0], in[1]

	pvol := series.Mul(close, vol)
	if opts.Signed {
		pvol = series.Mul(pvol, series.SignedSeries(close, 1))
	}

	return finish(pvol, fmt.Sprintf("PVOL_%d", length), opts.Options), nil
}
