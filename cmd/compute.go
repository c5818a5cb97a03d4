package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/vadiminshakov/volind/config"
	"github.com/vadiminshakov/volind/internal/loader"
	"github.com/vadiminshakov/volind/internal/report"
	"github.com/vadiminshakov/volind/pkg/indicators"
	"github.com/vadiminshakov/volind/pkg/indicators/volume"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "compute volume indicators over a candle file",
	RunE:  runCompute,
}

func init() {
	registerComputeFlags(computeCmd.Flags())
}

func registerComputeFlags(f *pflag.FlagSet) {
	f.String("config", "", "yaml config file, overrides the indicator flags")
	f.String("input", "", "candle file")
	f.String("format", "", "candle file format: csv or yaml (default from file extension)")
	f.StringSlice("indicator", nil, "indicator to compute: ad, pvol or pvt (default all)")
	f.String("length", "", "number of most recent candles to use")
	f.String("offset", "", "shift the output by this many periods")
	f.String("drift", "", "PVT rate of change lag")
	f.Bool("signed", false, "signed PVOL")
	f.Bool("use-open", false, "open based AD money flow")
	f.Bool("no-fast-path", false, "always use the native AD computation")
	f.String("fill-value", "", "replace missing values with this number")
	f.String("fill-method", "", "fill missing values: ffill or bfill")
	f.Bool("strict", false, "reject inputs whose indexes differ")
	f.Int("tail", 0, "print only the last n rows of the table")
	f.Int("volume-period", 20, "average volume period of the table summary")
	f.String("output", outputTable, "output format: table or yaml")
}

func runCompute(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output != outputTable && output != outputYAML {
		return errors.Errorf("incorrect --output %q (must be table or yaml)", output)
	}
	tail, _ := cmd.Flags().GetInt("tail")
	period, _ := cmd.Flags().GetInt("volume-period")

	candles, err := loader.Load(cfg.Input, cfg.Format)
	if err != nil {
		return err
	}
	logger.Info("candles loaded",
		zap.String("input", cfg.Input),
		zap.String("format", cfg.Format),
		zap.Int("count", len(candles)))

	calc := indicators.NewCalculator(logger)
	results := make([]volume.Result, 0, len(cfg.Indicators))
	for _, ind := range cfg.Indicators {
		r, err := calc.Compute(ind.Kind, candles, ind.Params)
		if err != nil {
			logger.Error("failed to calculate indicator", zap.String("indicator", string(ind.Kind)), zap.Error(err))
			return errors.Wrapf(err, "failed to calculate %s", ind.Kind)
		}
		results = append(results, r)
	}

	if output == outputYAML {
		return report.YAML(os.Stdout, results)
	}
	if err := report.Table(os.Stdout, cfg.Input, results, tail); err != nil {
		return err
	}
	return report.Summary(os.Stdout, calc.AnalyzeVolume(candles, period))
}

// loadConfig reads the config file when --config is given and builds one
// from the remaining flags otherwise.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		return config.Load(path)
	}

	tmp, err := configFromFlags(flags)
	if err != nil {
		return config.Config{}, err
	}
	return tmp.Build()
}

func configFromFlags(flags *pflag.FlagSet) (config.ConfigTmp, error) {
	var (
		tmp config.ConfigTmp
		err error
	)
	if tmp.Input, err = flags.GetString("input"); err != nil {
		return tmp, err
	}
	if tmp.Format, err = flags.GetString("format"); err != nil {
		return tmp, err
	}
	if tmp.StrictAlignment, err = flags.GetBool("strict"); err != nil {
		return tmp, err
	}

	names, err := flags.GetStringSlice("indicator")
	if err != nil {
		return tmp, err
	}
	if len(names) == 0 {
		for _, k := range indicators.Kinds {
			names = append(names, string(k))
		}
	}

	length, _ := flags.GetString("length")
	offset, _ := flags.GetString("offset")
	drift, _ := flags.GetString("drift")
	signed, _ := flags.GetBool("signed")
	useOpen, _ := flags.GetBool("use-open")
	noFastPath, _ := flags.GetBool("no-fast-path")
	fillValue, _ := flags.GetString("fill-value")
	fillMethod, _ := flags.GetString("fill-method")

	fastPath := !noFastPath
	for _, name := range names {
		tmp.Indicators = append(tmp.Indicators, config.IndicatorTmp{
			Name:       name,
			Length:     optional(length),
			Offset:     optional(offset),
			Drift:      optional(drift),
			Signed:     signed,
			UseOpen:    useOpen,
			FastPath:   &fastPath,
			FillValue:  fillValue,
			FillMethod: fillMethod,
		})
	}

	return tmp, nil
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
