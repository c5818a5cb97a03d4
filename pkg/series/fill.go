package series

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// FillMethod names a strategy for filling missing samples from their
// neighbours.
type FillMethod string

const (
	// FillNone leaves missing samples untouched.
	FillNone FillMethod = ""
	// FillForward propagates the last valid sample forward.
	FillForward FillMethod = "ffill"
	// FillBackward propagates the next valid sample backward.
	FillBackward FillMethod = "bfill"
)

// ParseFillMethod parses a fill method name. "pad" and "backfill" are
// accepted as aliases.
func ParseFillMethod(s string) (FillMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FillNone, nil
	case "ffill", "pad":
		return FillForward, nil
	case "bfill", "backfill":
		return FillBackward, nil
	default:
		return FillNone, errors.Wrapf(ErrInvalidFillMethod, "%q", s)
	}
}

// FillOptions configures how missing samples of an indicator output are
// filled. The zero value leaves the output untouched.
type FillOptions struct {
	// Value, when set, replaces every missing sample.
	Value *float64
	// Method, when set, fills missing samples from their neighbours.
	Method FillMethod
}

// FillValue is a convenience constructor for FillOptions.Value.
func FillValue(v float64) *float64 {
	return &v
}

// IsZero reports whether no fill is configured.
func (o FillOptions) IsZero() bool {
	return o.Value == nil && o.Method == FillNone
}

// Validate rejects unknown fill methods.
func (o FillOptions) Validate() error {
	switch o.Method {
	case FillNone, FillForward, FillBackward:
		return nil
	default:
		return errors.Wrapf(ErrInvalidFillMethod, "%q", string(o.Method))
	}
}

// Apply returns a copy of s with the fill policy applied. The value fill
// runs first and the method fill second, each unconditionally.
func (o FillOptions) Apply(s Series) Series {
	out := s.Clone()
	if o.Value != nil {
		for i, v := range out.Values {
			if math.IsNaN(v) {
				out.Values[i] = *o.Value
			}
		}
	}

	switch o.Method {
	case FillForward:
		last := math.NaN()
		for i, v := range out.Values {
			if math.IsNaN(v) {
				out.Values[i] = last
				continue
			}
			last = v
		}
	case FillBackward:
		next := math.NaN()
		for i := len(out.Values) - 1; i >= 0; i-- {
			if math.IsNaN(out.Values[i]) {
				out.Values[i] = next
				continue
			}
			next = out.Values[i]
		}
	}

	return out
}
