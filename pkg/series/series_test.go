package series

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func assertValues(t *testing.T, expected, actual []float64) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		if math.IsNaN(expected[i]) {
			assert.True(t, math.IsNaN(actual[i]), "index %d: expected NaN, got %v", i, actual[i])
			continue
		}
		assert.InDelta(t, expected[i], actual[i], 1e-9, "index %d", i)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := []float64{1, 2, 3}
	s := New("close", in)
	in[0] = 100

	assert.Equal(t, 1.0, s.Values[0])
	assert.Equal(t, "close", s.Name)
	assert.Equal(t, 3, s.Len())
}

func TestTail(t *testing.T) {
	idx := []time.Time{time.Unix(1, 0), time.Unix(2, 0), time.Unix(3, 0), time.Unix(4, 0)}
	s := NewWithIndex("close", idx, []float64{1, 2, 3, 4})

	tail := s.Tail(2)
	assert.Equal(t, []float64{3, 4}, tail.Values)
	assert.Equal(t, idx[2:], tail.Index)

	tail.Values[0] = 42
	assert.Equal(t, 3.0, s.Values[2], "tail must not alias the source")

	assert.Equal(t, s.Values, s.Tail(0).Values)
	assert.Equal(t, s.Values, s.Tail(10).Values)
}

func TestAt(t *testing.T) {
	s := New("x", []float64{5})
	assert.Equal(t, 5.0, s.At(0))
	assert.True(t, math.IsNaN(s.At(1)))
	assert.True(t, math.IsNaN(s.At(-1)))
}

func TestVerify(t *testing.T) {
	s := New("close", []float64{1, 2, 3, 4, 5})

	t.Run("trims to length", func(t *testing.T) {
		v, err := Verify(s, 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 4, 5}, v.Values)
	})

	t.Run("whole series without length", func(t *testing.T) {
		v, err := Verify(s, 0)
		require.NoError(t, err)
		assert.Equal(t, s.Values, v.Values)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := Verify(s, 6)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInsufficientData))
		assert.Contains(t, err.Error(), "close")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Verify(Series{Name: "volume"}, 0)
		assert.True(t, errors.Is(err, ErrInsufficientData))
	})
}

func TestAligned(t *testing.T) {
	idx := []time.Time{time.Unix(1, 0), time.Unix(2, 0)}
	other := []time.Time{time.Unix(1, 0), time.Unix(3, 0)}

	assert.True(t, Aligned(New("a", []float64{1, 2}), New("b", []float64{3, 4})))
	assert.False(t, Aligned(New("a", []float64{1, 2}), New("b", []float64{3})))
	assert.True(t, Aligned(NewWithIndex("a", idx, []float64{1, 2}), New("b", []float64{3, 4})))
	assert.False(t, Aligned(NewWithIndex("a", idx, []float64{1, 2}), NewWithIndex("b", other, []float64{3, 4})))

	err := CheckAligned(NewWithIndex("high", idx, []float64{1, 2}), NewWithIndex("low", other, []float64{3, 4}))
	assert.True(t, errors.Is(err, ErrMisalignedInput))
	assert.Contains(t, err.Error(), "low")
}

func TestDecimals(t *testing.T) {
	s := FromDecimals("close", []decimal.Decimal{decimal.RequireFromString("1.5"), decimal.NewFromInt(2)})
	assert.Equal(t, []float64{1.5, 2}, s.Values)

	out := New("x", []float64{1.25, nan, math.Inf(1)}).Decimals()
	require.Len(t, out, 3)
	assert.True(t, out[0].Valid)
	assert.True(t, out[0].Decimal.Equal(decimal.RequireFromString("1.25")))
	assert.False(t, out[1].Valid)
	assert.False(t, out[2].Valid)
}

func TestCountMissing(t *testing.T) {
	assert.Equal(t, 2, New("x", []float64{nan, 1, nan}).CountMissing())
}
