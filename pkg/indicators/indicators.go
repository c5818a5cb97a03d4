// Package indicators calculates volume indicators (AD, PVOL, PVT) from OHLCV
// price data. It converts decimal candles into series, runs the indicators
// from the volume package and logs how each one was produced.
package indicators

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/volind/pkg/indicators/volume"
	"github.com/vadiminshakov/volind/pkg/series"
)

// PriceData represents a single OHLCV candle.
type PriceData struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// ErrMissingOpen is returned when the open based AD is requested for candles
// that carry no open prices.
var ErrMissingOpen = errors.New("open prices are missing")

// Kind identifies an indicator.
type Kind string

const (
	KindAD   Kind = "ad"
	KindPVOL Kind = "pvol"
	KindPVT  Kind = "pvt"
)

// Kinds lists every supported indicator in display order.
var Kinds = []Kind{KindAD, KindPVOL, KindPVT}

// ParseKind parses an indicator name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAD, KindPVOL, KindPVT:
		return k, nil
	default:
		return "", fmt.Errorf("unknown indicator %q, expected one of ad, pvol, pvt", s)
	}
}

// Params holds the parameters of a single indicator run. Fields that do not
// apply to an indicator are ignored by it.
type Params struct {
	Length int
	Offset int
	// Drift is the rate of change lag used by PVT.
	Drift int
	// Signed enables the signed PVOL variant.
	Signed bool
	// UseOpen switches AD to the open based money flow.
	UseOpen bool
	// DisableFastPath forces the native AD computation.
	DisableFastPath bool
	// StrictAlignment rejects inputs with differing indexes.
	StrictAlignment bool
	Fill            series.FillOptions
}

func (p Params) options() volume.Options {
	return volume.Options{
		Length:          p.Length,
		Offset:          p.Offset,
		Fill:            p.Fill,
		StrictAlignment: p.StrictAlignment,
	}
}

// VolumeIndicators holds the result of every indicator for one data set.
type VolumeIndicators struct {
	AD   volume.Result
	PVOL volume.Result
	PVT  volume.Result
}

// Results returns the indicators in display order.
func (v VolumeIndicators) Results() []volume.Result {
	return []volume.Result{v.AD, v.PVOL, v.PVT}
}

// Calculator runs volume indicators over price data.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new Calculator.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Compute calculates a single indicator.
func (c *Calculator) Compute(kind Kind, data []PriceData, p Params) (volume.Result, error) {
	if len(data) == 0 {
		return volume.Result{}, errors.Wrap(series.ErrInsufficientData, "no price data")
	}

	if kind == KindAD && p.UseOpen && !hasOpen(data) {
		return volume.Result{}, errors.Wrap(ErrMissingOpen, "AD with open")
	}

	cols := toColumns(data)

	var (
		result volume.Result
		err    error
	)
	switch kind {
	case KindAD:
		opts := volume.ADOptions{Options: p.options(), DisableFastPath: p.DisableFastPath}
		if p.UseOpen {
			opts.Open = &cols.open
		}
		result, err = volume.AD(cols.high, cols.low, cols.close, cols.volume, opts)
	case KindPVOL:
		result, err = volume.PVOL(cols.close, cols.volume, volume.PVOLOptions{Options: p.options(), Signed: p.Signed})
	case KindPVT:
		result, err = volume.PVT(cols.close, cols.volume, volume.PVTOptions{Options: p.options(), Drift: p.Drift})
	default:
		return volume.Result{}, fmt.Errorf("unknown indicator %q", kind)
	}
	if err != nil {
		return volume.Result{}, err
	}

	if kind == KindAD && !p.UseOpen && !p.DisableFastPath && volume.FastPathAvailable() && result.Backend == volume.Native().Name() {
		c.logger.Info("fast path cannot reproduce native AD for this data, used native computation",
			zap.Int("points", result.Len()))
	}

	c.logger.Debug("indicator calculated",
		zap.String("name", result.Name),
		zap.String("category", result.Category),
		zap.String("backend", result.Backend),
		zap.Int("points", result.Len()),
		zap.Int("missing", result.CountMissing()))

	return result, nil
}

// CalculateAll calculates AD, PVOL and PVT with the same parameters.
func (c *Calculator) CalculateAll(data []PriceData, p Params) (VolumeIndicators, error) {
	ad, err := c.Compute(KindAD, data, p)
	if err != nil {
		return VolumeIndicators{}, errors.Wrap(err, "failed to calculate AD")
	}

	pvol, err := c.Compute(KindPVOL, data, p)
	if err != nil {
		return VolumeIndicators{}, errors.Wrap(err, "failed to calculate PVOL")
	}

	pvt, err := c.Compute(KindPVT, data, p)
	if err != nil {
		return VolumeIndicators{}, errors.Wrap(err, "failed to calculate PVT")
	}

	return VolumeIndicators{AD: ad, PVOL: pvol, PVT: pvt}, nil
}

// hasOpen reports whether any candle carries a non-zero open. Loaders leave
// the open at zero when the source has no such column.
func hasOpen(data []PriceData) bool {
	for _, pd := range data {
		if !pd.Open.IsZero() {
			return true
		}
	}
	return false
}

type columns struct {
	open, high, low, close, volume series.Series
}

// toColumns splits candles into one series per field. Candle times become
// the series index when every candle carries one.
func toColumns(data []PriceData) columns {
	opens := make([]decimal.Decimal, len(data))
	highs := make([]decimal.Decimal, len(data))
	lows := make([]decimal.Decimal, len(data))
	closes := make([]decimal.Decimal, len(data))
	volumes := make([]decimal.Decimal, len(data))
	index := make([]time.Time, len(data))

	timed := true
	for i, pd := range data {
		opens[i] = pd.Open
		highs[i] = pd.High
		lows[i] = pd.Low
		closes[i] = pd.Close
		volumes[i] = pd.Volume
		index[i] = pd.Time
		timed = timed && !pd.Time.IsZero()
	}
	if !timed {
		index = nil
	}

	cols := columns{
		open:   series.FromDecimals("open", opens),
		high:   series.FromDecimals("high", highs),
		low:    series.FromDecimals("low", lows),
		close:  series.FromDecimals("close", closes),
		volume: series.FromDecimals("volume", volumes),
	}
	for _, s := range []*series.Series{&cols.open, &cols.high, &cols.low, &cols.close, &cols.volume} {
		s.Index = index
	}

	return cols
}
