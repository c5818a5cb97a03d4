package volume

import (
	"fmt"

	"github.com/vadiminshakov/volind/pkg/series"
)

// ADOptions configures AD.
type ADOptions struct {
	Options
	// Open switches the money flow to close - open. The output is then
	// named ADo_{length}.
	Open *series.Series
	// DisableFastPath forces the native computation even when an
	// accelerated backend is linked in.
	DisableFastPath bool
}

// AD calculates the Accumulation/Distribution line. It relates the close to
// the high-low range of each bar, weights it by volume and accumulates it:
//
//	AD = cumsum((2*close - high - low) * volume / (high - low))
//	ADo = cumsum((close - open) * volume / (high - low))
//
// The accelerated backend only serves the high/low/close variant.
func AD(high, low, close, vol series.Series, opts ADOptions) (Result, error) {
	length := series.ResolveLength(opts.Length, high.Len())

	inputs := []series.Series{high, low, close, vol}
	if opts.Open != nil {
		inputs = append(inputs, *opts.Open)
	}

	in, err := prepare(opts.Options, length, inputs...)
	if err != nil {
		return Result{}, wrap(err, "AD")
	}
	high, low, close, vol = in[0], in[1], in[2], in[3]

	var (
		ad      series.Series
		backend ADBackend
		name    = fmt.Sprintf("AD_%d", length)
	)
	if opts.Open != nil {
		open := in[4]
		backend = nativeAD{}
		ad = accumulate(high, low, close, vol, &open)
		name = fmt.Sprintf("ADo_%d", length)
	} else {
		backend = selectADBackend(opts.DisableFastPath, high, low, close, vol)
		ad = backend.Compute(high, low, close, vol)
	}

	result := finish(ad, name, opts.Options)
	result.Backend = backend.Name()

	return result, nil
}
