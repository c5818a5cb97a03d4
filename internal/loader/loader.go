// Package loader reads OHLCV candles from local CSV or YAML files.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/volind/config"
	"github.com/vadiminshakov/volind/pkg/indicators"
)

// unix timestamps above this value are taken as milliseconds
const millisThreshold = 1e11

// CandleTmp is the YAML representation of a candle.
type CandleTmp struct {
	Time   string `yaml:"time,omitempty"`
	Open   string `yaml:"open,omitempty"`
	High   string `yaml:"high"`
	Low    string `yaml:"low"`
	Close  string `yaml:"close"`
	Volume string `yaml:"volume"`
}

// Load reads candles from path in the given format (config.FormatCSV or
// config.FormatYAML).
func Load(path, format string) ([]indicators.PriceData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	switch format {
	case config.FormatYAML:
		return ReadYAML(f)
	case config.FormatCSV:
		return ReadCSV(f)
	default:
		return nil, errors.Errorf("unsupported candle format %q", format)
	}
}

// ReadYAML reads a YAML list of candles.
func ReadYAML(r io.Reader) ([]indicators.PriceData, error) {
	var tmps []CandleTmp
	if err := yaml.NewDecoder(r).Decode(&tmps); err != nil {
		return nil, errors.Wrap(err, "failed to decode yaml candles")
	}

	result := make([]indicators.PriceData, len(tmps))
	for i, c := range tmps {
		pd, err := parseCandle(i, c)
		if err != nil {
			return nil, err
		}
		result[i] = pd
	}
	return result, nil
}

// ReadCSV reads candles from CSV with a header row. Columns are matched by
// name: time (or timestamp, date), open, high, low, close, volume. The time
// and open columns are optional.
func ReadCSV(r io.Reader) ([]indicators.PriceData, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}

	columns := map[string]int{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch name {
		case "timestamp", "date", "datetime", "open_time":
			name = "time"
		}
		columns[name] = i
	}
	for _, required := range []string{"high", "low", "close", "volume"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.Errorf("csv header lacks %q column", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var result []indicators.PriceData
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read csv row %d", row)
		}

		pd, err := parseCandle(row, CandleTmp{
			Time:   field(record, "time"),
			Open:   field(record, "open"),
			High:   field(record, "high"),
			Low:    field(record, "low"),
			Close:  field(record, "close"),
			Volume: field(record, "volume"),
		})
		if err != nil {
			return nil, err
		}
		result = append(result, pd)
	}

	return result, nil
}

func parseCandle(i int, c CandleTmp) (indicators.PriceData, error) {
	var (
		pd  indicators.PriceData
		err error
	)

	if pd.Time, err = parseTime(c.Time); err != nil {
		return pd, errors.Wrapf(err, "failed to parse time at index %d", i)
	}
	if c.Open != "" {
		if pd.Open, err = decimal.NewFromString(strings.TrimSpace(c.Open)); err != nil {
			return pd, errors.Wrapf(err, "failed to parse open price at index %d", i)
		}
	}
	if pd.High, err = decimal.NewFromString(strings.TrimSpace(c.High)); err != nil {
		return pd, errors.Wrapf(err, "failed to parse high price at index %d", i)
	}
	if pd.Low, err = decimal.NewFromString(strings.TrimSpace(c.Low)); err != nil {
		return pd, errors.Wrapf(err, "failed to parse low price at index %d", i)
	}
	if pd.Close, err = decimal.NewFromString(strings.TrimSpace(c.Close)); err != nil {
		return pd, errors.Wrapf(err, "failed to parse close price at index %d", i)
	}
	if pd.Volume, err = decimal.NewFromString(strings.TrimSpace(c.Volume)); err != nil {
		return pd, errors.Wrapf(err, "failed to parse volume at index %d", i)
	}

	return pd, nil
}

// parseTime accepts RFC 3339 timestamps and unix seconds or milliseconds.
// An empty value yields the zero time.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > millisThreshold {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, s)
}
