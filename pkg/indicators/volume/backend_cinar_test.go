//go:build !noaccel

package volume

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/vadiminshakov/volind/pkg/series"
)

func syntheticBars(n int) bars {
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	vol := make([]float64, n)
	for i := 0; i < n; i++ {
		mid := 100 + 10*math.Sin(float64(i)/7)
		spread := 1 + math.Abs(math.Cos(float64(i)/3))
		high[i] = mid + spread
		low[i] = mid - spread
		closes[i] = mid + spread*math.Sin(float64(i))
		vol[i] = 1000 + float64(i%13)*37
	}
	return bars{
		high:   series.New("high", high),
		low:    series.New("low", low),
		close:  series.New("close", closes),
		volume: series.New("volume", vol),
	}
}

func TestFastPathAvailable(t *testing.T) {
	assert.True(t, FastPathAvailable())
}

func TestAD_FastPathParity(t *testing.T) {
	b := syntheticBars(250)

	fast, err := AD(b.high, b.low, b.close, b.volume, ADOptions{})
	require.NoError(t, err)
	native, err := AD(b.high, b.low, b.close, b.volume, ADOptions{DisableFastPath: true})
	require.NoError(t, err)

	assert.Equal(t, "cinar", fast.Backend)
	assert.Equal(t, "native", native.Backend)
	assert.Equal(t, native.Name, fast.Name)
	require.Equal(t, native.Len(), fast.Len())
	assert.True(t, floats.EqualApprox(native.Values, fast.Values, 1e-9))
}

func TestCinarAD_Supports(t *testing.T) {
	b := syntheticBars(5)
	backend := cinarAD{}

	assert.True(t, backend.Supports(b.high, b.low, b.close, b.volume))

	flat := b.low.Clone()
	flat.Values[2] = b.high.Values[2]
	assert.False(t, backend.Supports(b.high, flat, b.close, b.volume))

	gap := b.volume.Clone()
	gap.Values[0] = math.NaN()
	assert.False(t, backend.Supports(b.high, b.low, b.close, gap))

	assert.False(t, backend.Supports(b.high, b.low, b.close, b.volume.Tail(3)))
}

func TestSelectADBackend(t *testing.T) {
	b := syntheticBars(5)

	assert.Equal(t, "cinar", selectADBackend(false, b.high, b.low, b.close, b.volume).Name())
	assert.Equal(t, "native", selectADBackend(true, b.high, b.low, b.close, b.volume).Name())
	assert.Equal(t, "native", Native().Name())
}
