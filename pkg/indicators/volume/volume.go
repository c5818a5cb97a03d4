// Package volume implements volume based indicators: Accumulation/Distribution
// (AD), Price-Volume (PVOL) and Price-Volume Trend (PVT).
//
// Every indicator is a stateless transform over index-aligned series. Inputs
// are copied on entry, so callers keep ownership of their buffers and the
// functions are safe for concurrent use.
package volume

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/volind/pkg/series"
)

// Category is the tag carried by every result of this package.
const Category = "volume"

// Result is an indicator output: the computed series named after the
// indicator and its parameters, plus its category tag.
type Result struct {
	series.Series
	// Category is always "volume" for this package.
	Category string
	// Backend names the implementation that produced the values. It is set
	// for indicators with an accelerated alternative only.
	Backend string
}

// Options are the parameters shared by all volume indicators.
type Options struct {
	// Length trims inputs to the most recent Length samples. Zero means the
	// whole series.
	Length int
	// Offset shifts the output forward (positive) or backward (negative).
	Offset int
	// Fill configures how missing output samples are filled.
	Fill series.FillOptions
	// StrictAlignment makes inputs carrying differing indexes fail with
	// series.ErrMisalignedInput instead of being combined positionally.
	StrictAlignment bool
}

// prepare validates opts and verifies every input against length. The
// returned series are trimmed copies in the order they were passed.
func prepare(opts Options, length int, inputs ...series.Series) ([]series.Series, error) {
	if err := opts.Fill.Validate(); err != nil {
		return nil, err
	}

	out := make([]series.Series, len(inputs))
	for i, in := range inputs {
		v, err := series.Verify(in, length)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	if opts.StrictAlignment && len(out) > 1 {
		if err := series.CheckAligned(out[0], out[1:]...); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// finish applies offset and fill policy and annotates the result.
func finish(s series.Series, name string, opts Options) Result {
	if offset := series.ResolveOffset(opts.Offset); offset != 0 {
		s = series.Shift(s, offset)
	}
	if !opts.Fill.IsZero() {
		s = opts.Fill.Apply(s)
	}
	s.Name = name

	return Result{Series: s, Category: Category}
}

func wrap(err error, indicator string) error {
	return errors.Wrapf(err, "%s", indicator)
}
