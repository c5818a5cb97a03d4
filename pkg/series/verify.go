package series

import (
	"github.com/pkg/errors"
)

var (
	// ErrInsufficientData is returned when a series cannot supply the
	// requested number of samples.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrMisalignedInput is returned in strict mode when input series do not
	// share the same index.
	ErrMisalignedInput = errors.New("misaligned input series")
	// ErrInvalidFillMethod is returned for an unknown fill method name.
	ErrInvalidFillMethod = errors.New("invalid fill method")
)

// Verify checks that s can supply minLength samples and returns a copy
// trimmed to the most recent minLength samples. With a non-positive
// minLength the whole series is returned. An empty series never verifies.
func Verify(s Series, minLength int) (Series, error) {
	if s.Len() == 0 {
		return Series{}, errors.Wrapf(ErrInsufficientData, "series %q is empty", s.Name)
	}
	if minLength > 0 && s.Len() < minLength {
		return Series{}, errors.Wrapf(ErrInsufficientData,
			"series %q: need %d points, got %d", s.Name, minLength, s.Len())
	}
	return s.Tail(minLength), nil
}

// Aligned reports whether a and b share length and, when both carry an
// index, the same timestamps.
func Aligned(a, b Series) bool {
	if a.Len() != b.Len() {
		return false
	}
	if a.Index == nil || b.Index == nil {
		return true
	}
	if len(a.Index) != len(b.Index) {
		return false
	}
	for i := range a.Index {
		if !a.Index[i].Equal(b.Index[i]) {
			return false
		}
	}
	return true
}

// CheckAligned returns ErrMisalignedInput naming the first series that is not
// aligned with ref.
func CheckAligned(ref Series, others ...Series) error {
	for _, o := range others {
		if !Aligned(ref, o) {
			return errors.Wrapf(ErrMisalignedInput, "series %q is not aligned with %q", o.Name, ref.Name)
		}
	}
	return nil
}
