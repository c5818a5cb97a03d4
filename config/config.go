// Package config loads the run configuration of the volind command: which
// candle file to read and which indicators to compute with what parameters.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/volind/pkg/indicators"
	"github.com/vadiminshakov/volind/pkg/series"
)

const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// Config is a validated run configuration.
type Config struct {
	Input      string
	Format     string
	Indicators []Indicator
}

// Indicator is a single indicator to compute.
type Indicator struct {
	Kind   indicators.Kind
	Params indicators.Params
}

// ConfigTmp is the on-disk representation of Config.
type ConfigTmp struct {
	Input           string         `yaml:"input"`
	Format          string         `yaml:"format,omitempty"`
	StrictAlignment bool           `yaml:"strict_alignment,omitempty"`
	Indicators      []IndicatorTmp `yaml:"indicators,omitempty"`
}

// IndicatorTmp is the on-disk representation of Indicator. Numeric window
// parameters are loosely typed and coerced; anything that does not coerce
// falls back to the default.
type IndicatorTmp struct {
	Name       string `yaml:"name"`
	Length     any    `yaml:"length,omitempty"`
	Offset     any    `yaml:"offset,omitempty"`
	Drift      any    `yaml:"drift,omitempty"`
	Signed     bool   `yaml:"signed,omitempty"`
	UseOpen    bool   `yaml:"use_open,omitempty"`
	FastPath   *bool  `yaml:"fast_path,omitempty"`
	FillValue  string `yaml:"fill_value,omitempty"`
	FillMethod string `yaml:"fill_method,omitempty"`
}

// Load reads and validates a yaml config file.
func Load(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}
	return Parse(f)
}

// Parse validates a yaml config document.
func Parse(data []byte) (Config, error) {
	var tmp ConfigTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse yaml config")
	}
	return tmp.Build()
}

// Build validates the raw config. Without indicators every supported
// indicator is computed with default parameters.
func (c ConfigTmp) Build() (Config, error) {
	if c.Input == "" {
		return Config{}, errors.New("'input' param is required")
	}

	format, err := resolveFormat(c.Format, c.Input)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Input: c.Input, Format: format}

	tmps := c.Indicators
	if len(tmps) == 0 {
		for _, k := range indicators.Kinds {
			tmps = append(tmps, IndicatorTmp{Name: string(k)})
		}
	}

	for i, t := range tmps {
		ind, err := t.Build()
		if err != nil {
			return Config{}, errors.Wrapf(err, "incorrect indicator #%d in config", i+1)
		}
		ind.Params.StrictAlignment = c.StrictAlignment
		cfg.Indicators = append(cfg.Indicators, ind)
	}

	return cfg, nil
}

// Build validates a single raw indicator entry.
func (t IndicatorTmp) Build() (Indicator, error) {
	kind, err := indicators.ParseKind(t.Name)
	if err != nil {
		return Indicator{}, err
	}

	params := indicators.Params{
		Length:  series.ResolveLength(t.Length, 0),
		Offset:  series.ResolveOffset(t.Offset),
		Drift:   series.ResolveDrift(t.Drift),
		Signed:  t.Signed,
		UseOpen: t.UseOpen,
	}
	if t.FastPath != nil {
		params.DisableFastPath = !*t.FastPath
	}

	if t.FillValue != "" {
		v, err := decimal.NewFromString(t.FillValue)
		if err != nil {
			return Indicator{}, errors.Wrapf(err, "incorrect 'fill_value' param %q (must be a decimal)", t.FillValue)
		}
		params.Fill.Value = series.FillValue(v.InexactFloat64())
	}

	method, err := series.ParseFillMethod(t.FillMethod)
	if err != nil {
		return Indicator{}, errors.Wrap(err, "incorrect 'fill_method' param")
	}
	params.Fill.Method = method

	return Indicator{Kind: kind, Params: params}, nil
}

func resolveFormat(format, input string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(input)) {
		case ".yaml", ".yml":
			return FormatYAML, nil
		default:
			return FormatCSV, nil
		}
	}

	switch f := strings.ToLower(format); f {
	case FormatCSV:
		return f, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf("incorrect 'format' param %q (must be csv or yaml)", format)
	}
}
