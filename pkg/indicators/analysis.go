package indicators

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultAveragePeriod = 20
	spikeFactor          = 1.5
)

// VolumeAnalysis summarizes the traded volume of a data set.
type VolumeAnalysis struct {
	// CurrentVolume is the volume of the most recent candle.
	CurrentVolume decimal.Decimal
	// AverageVolume is the simple moving average of volume over Period candles.
	AverageVolume decimal.Decimal
	// RelativeVolume is CurrentVolume / AverageVolume, zero when the average is zero.
	RelativeVolume decimal.Decimal
	Period         int
	// Spikes holds the positions of candles whose volume exceeds 1.5x the average.
	Spikes []int
}

// AnalyzeVolume computes volume metrics over the last period candles. A
// non-positive period uses 20; a period longer than data uses all of it.
func (c *Calculator) AnalyzeVolume(data []PriceData, period int) VolumeAnalysis {
	if len(data) == 0 {
		c.logger.Warn("no price data for volume analysis")
		return VolumeAnalysis{Spikes: []int{}}
	}

	if period <= 0 {
		period = defaultAveragePeriod
	}
	if len(data) < period {
		period = len(data)
	}

	sum := decimal.Zero
	for i := len(data) - period; i < len(data); i++ {
		sum = sum.Add(data[i].Volume)
	}
	avg := sum.Div(decimal.NewFromInt(int64(period)))
	current := data[len(data)-1].Volume

	relative := decimal.Zero
	if avg.GreaterThan(decimal.Zero) {
		relative = current.Div(avg)
	}

	threshold := avg.Mul(decimal.NewFromFloat(spikeFactor))
	spikes := []int{}
	for i, pd := range data {
		if pd.Volume.GreaterThan(threshold) {
			spikes = append(spikes, i)
		}
	}

	c.logger.Debug("volume analyzed",
		zap.Int("period", period),
		zap.String("relative", relative.StringFixed(2)),
		zap.Int("spikes", len(spikes)))

	return VolumeAnalysis{
		CurrentVolume:  current,
		AverageVolume:  avg,
		RelativeVolume: relative,
		Period:         period,
		Spikes:         spikes,
	}
}
