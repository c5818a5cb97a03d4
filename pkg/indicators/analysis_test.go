package indicators

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volumes(vs ...int64) []PriceData {
	data := make([]PriceData, len(vs))
	for i, v := range vs {
		data[i] = PriceData{Volume: decimal.NewFromInt(v)}
	}
	return data
}

func TestAnalyzeVolume(t *testing.T) {
	calc := NewCalculator(nil)

	a := calc.AnalyzeVolume(volumes(100, 100, 100, 400), 0)
	require.Equal(t, 4, a.Period)
	assert.True(t, a.AverageVolume.Equal(decimal.NewFromInt(175)))
	assert.True(t, a.CurrentVolume.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, "2.29", a.RelativeVolume.StringFixed(2))
	assert.Equal(t, []int{3}, a.Spikes)
}

func TestAnalyzeVolume_Period(t *testing.T) {
	a := NewCalculator(nil).AnalyzeVolume(volumes(1000, 10, 10), 2)
	assert.Equal(t, 2, a.Period)
	assert.True(t, a.AverageVolume.Equal(decimal.NewFromInt(10)))
	assert.True(t, a.RelativeVolume.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, []int{0}, a.Spikes)
}

func TestAnalyzeVolume_Empty(t *testing.T) {
	a := NewCalculator(nil).AnalyzeVolume(nil, 20)
	assert.True(t, a.RelativeVolume.IsZero())
	assert.Empty(t, a.Spikes)

	a = NewCalculator(nil).AnalyzeVolume(volumes(0, 0), 20)
	assert.True(t, a.RelativeVolume.IsZero())
	assert.Empty(t, a.Spikes)
}
