package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vadiminshakov/volind/pkg/series"
)

func candle(ts int64, open, high, low, close, volume string) PriceData {
	return PriceData{
		Time:   time.Unix(ts, 0).UTC(),
		Open:   decimal.RequireFromString(open),
		High:   decimal.RequireFromString(high),
		Low:    decimal.RequireFromString(low),
		Close:  decimal.RequireFromString(close),
		Volume: decimal.RequireFromString(volume),
	}
}

func sampleData() []PriceData {
	return []PriceData{
		candle(60, "9", "10", "8", "10", "100"),
		candle(120, "10", "12", "9", "11", "200"),
		candle(180, "10", "11", "9", "9", "150"),
	}
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"ad", "AD", " pvol ", "Pvt"} {
		_, err := ParseKind(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseKind("obv")
	assert.Error(t, err)
}

func TestCalculator_Compute(t *testing.T) {
	calc := NewCalculator(zap.NewNop())
	data := sampleData()

	t.Run("pvol", func(t *testing.T) {
		res, err := calc.Compute(KindPVOL, data, Params{})
		require.NoError(t, err)
		assert.Equal(t, "PVOL_3", res.Name)
		assert.Equal(t, []float64{1000, 2200, 1350}, res.Values)
		require.Len(t, res.Index, 3)
		assert.True(t, res.Index[0].Equal(time.Unix(60, 0)))
	})

	t.Run("ad with open", func(t *testing.T) {
		res, err := calc.Compute(KindAD, data, Params{UseOpen: true, Length: 2})
		require.NoError(t, err)
		assert.Equal(t, "ADo_2", res.Name)
		assert.Equal(t, "native", res.Backend)
		assert.InDelta(t, 200.0/3.0, res.Values[0], 1e-9)
	})

	t.Run("pvt with drift", func(t *testing.T) {
		res, err := calc.Compute(KindPVT, data, Params{Drift: 2})
		require.NoError(t, err)
		assert.Equal(t, "PVT", res.Name)
		assert.True(t, math.IsNaN(res.Values[1]))
		assert.InDelta(t, -0.1*150, res.Values[2], 1e-9)
	})

	t.Run("ad with open requires opens", func(t *testing.T) {
		noOpen := sampleData()
		for i := range noOpen {
			noOpen[i].Open = decimal.Zero
		}
		_, err := calc.Compute(KindAD, noOpen, Params{UseOpen: true})
		assert.ErrorIs(t, err, ErrMissingOpen)

		res, err := calc.Compute(KindAD, noOpen, Params{})
		require.NoError(t, err)
		assert.Equal(t, "AD_3", res.Name)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := calc.Compute(Kind("obv"), data, Params{})
		assert.Error(t, err)
	})

	t.Run("no data", func(t *testing.T) {
		_, err := calc.Compute(KindAD, nil, Params{})
		assert.ErrorIs(t, err, series.ErrInsufficientData)
	})
}

func TestCalculator_CalculateAll(t *testing.T) {
	calc := NewCalculator(nil)

	all, err := calc.CalculateAll(sampleData(), Params{DisableFastPath: true, Fill: series.FillOptions{Value: series.FillValue(0)}})
	require.NoError(t, err)

	names := []string{}
	for _, r := range all.Results() {
		names = append(names, r.Name)
		assert.Equal(t, "volume", r.Category)
		assert.Zero(t, r.CountMissing())
	}
	assert.Equal(t, []string{"AD_3", "PVOL_3", "PVT"}, names)

	_, err = calc.CalculateAll(sampleData(), Params{Length: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to calculate AD")
	assert.ErrorIs(t, err, series.ErrInsufficientData)
}

func TestCalculator_LogsResult(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	calc := NewCalculator(zap.New(core))

	_, err := calc.Compute(KindPVOL, sampleData(), Params{Offset: 1})
	require.NoError(t, err)

	entries := logs.FilterMessage("indicator calculated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "PVOL_3", fields["name"])
	assert.Equal(t, int64(1), fields["missing"])
}

func TestToColumns_WithoutTimes(t *testing.T) {
	data := sampleData()
	data[1].Time = time.Time{}

	cols := toColumns(data)
	assert.Nil(t, cols.close.Index)
	assert.Equal(t, []float64{10, 11, 9}, cols.close.Values)
	assert.Equal(t, []float64{9, 10, 10}, cols.open.Values)
}
