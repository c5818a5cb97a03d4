// Package setup implements the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/volind/config"
	"github.com/vadiminshakov/volind/pkg/indicators"
	"github.com/vadiminshakov/volind/pkg/series"
)

// DefaultFilename is where the wizard writes the generated config.
const DefaultFilename = "volind.gen.yaml"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// Answers holds everything the wizard asks for, as typed by the user.
type Answers struct {
	Input      string
	Format     string
	Indicators []string
	Length     string
	Offset     string
	Drift      string
	Signed     bool
	UseOpen    bool
	FastPath   bool
	FillValue  string
	FillMethod string
}

// ConfigTmp turns the answers into a config document.
func (a Answers) ConfigTmp() config.ConfigTmp {
	cfg := config.ConfigTmp{Input: a.Input, Format: a.Format}

	for _, name := range a.Indicators {
		ind := config.IndicatorTmp{
			Name:       name,
			Length:     emptyToNil(a.Length),
			Offset:     emptyToNil(a.Offset),
			FillValue:  a.FillValue,
			FillMethod: a.FillMethod,
		}
		switch indicators.Kind(name) {
		case indicators.KindAD:
			fastPath := a.FastPath
			ind.FastPath = &fastPath
			ind.UseOpen = a.UseOpen
		case indicators.KindPVOL:
			ind.Signed = a.Signed
		case indicators.KindPVT:
			ind.Drift = emptyToNil(a.Drift)
		}
		cfg.Indicators = append(cfg.Indicators, ind)
	}

	return cfg
}

// Save validates the answers and writes them to filename.
func (a Answers) Save(filename string) error {
	tmp := a.ConfigTmp()
	if _, err := tmp.Build(); err != nil {
		return errors.Wrap(err, "generated config is invalid")
	}

	data, err := yaml.Marshal(tmp)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}

// RunTUI launches the terminal configuration wizard and writes the result
// to filename.
func RunTUI(filename string) error {
	a := Answers{
		Format:     config.FormatCSV,
		Indicators: []string{string(indicators.KindAD), string(indicators.KindPVOL), string(indicators.KindPVT)},
		Drift:      "1",
		FastPath:   true,
	}
	var confirm bool

	// step 1: data
	clearScreen()
	fmt.Println(headerStyle.Render("VOLIND CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Volume indicators over your candles.\n"))
	fmt.Println(stepStyle.Render("STEP 1: DATA"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Candle file").
				Description("CSV with a header row or a YAML list of candles").
				Value(&a.Input).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("File format").
				Options(
					huh.NewOption("CSV", config.FormatCSV),
					huh.NewOption("YAML", config.FormatYAML),
				).
				Value(&a.Format),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 2: indicators
	clearScreen()
	fmt.Println(headerStyle.Render("VOLIND CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: INDICATORS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Indicators to compute").
				Options(
					huh.NewOption("Accumulation/Distribution (AD)", string(indicators.KindAD)),
					huh.NewOption("Price-Volume (PVOL)", string(indicators.KindPVOL)),
					huh.NewOption("Price-Volume Trend (PVT)", string(indicators.KindPVT)),
				).
				Value(&a.Indicators).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return fmt.Errorf("select at least one indicator")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 3: parameters
	clearScreen()
	fmt.Println(headerStyle.Render("VOLIND CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: PARAMETERS"))

	fields := []huh.Field{
		huh.NewInput().
			Title("Length").
			Description("Most recent candles to use, empty for all").
			Value(&a.Length).
			Validate(validateOptionalInt(false)),
		huh.NewInput().
			Title("Offset").
			Description("Shift the output by this many periods, may be negative").
			Value(&a.Offset).
			Validate(validateOptionalInt(true)),
	}
	if a.has(indicators.KindAD) {
		fields = append(fields,
			huh.NewConfirm().Title("AD: use open instead of high/low midpoint?").Value(&a.UseOpen),
			huh.NewConfirm().Title("AD: use accelerated backend when possible?").Value(&a.FastPath),
		)
	}
	if a.has(indicators.KindPVOL) {
		fields = append(fields, huh.NewConfirm().Title("PVOL: signed by price direction?").Value(&a.Signed))
	}
	if a.has(indicators.KindPVT) {
		fields = append(fields, huh.NewInput().
			Title("PVT: drift").
			Description("Rate of change lag in periods").
			Value(&a.Drift).
			Validate(validateOptionalInt(false)))
	}

	err = huh.NewForm(huh.NewGroup(fields...)).Run()
	if err != nil {
		return err
	}

	// step 4: missing values
	clearScreen()
	fmt.Println(headerStyle.Render("VOLIND CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: MISSING VALUES"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Fill value").
				Description("Replace missing values with this number, empty to keep them").
				Value(&a.FillValue).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := decimal.NewFromString(s); err != nil {
						return fmt.Errorf("must be a valid number")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Fill method").
				Options(
					huh.NewOption("None", string(series.FillNone)),
					huh.NewOption("Forward fill", string(series.FillForward)),
					huh.NewOption("Backward fill", string(series.FillBackward)),
				).
				Value(&a.FillMethod),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	clearScreen()
	fmt.Println(headerStyle.Render("VOLIND CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Input: %s (%s)\nIndicators: %s\nLength: %s\nOffset: %s\n",
		a.Input, a.Format, strings.Join(a.Indicators, ", "), orAll(a.Length), orZero(a.Offset),
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	if err := a.Save(filename); err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s", filename)))
	return nil
}

func (a Answers) has(kind indicators.Kind) bool {
	for _, name := range a.Indicators {
		if name == string(kind) {
			return true
		}
	}
	return false
}

func validateOptionalInt(allowNegative bool) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if !allowNegative && n < 0 {
			return fmt.Errorf("must not be negative")
		}
		return nil
	}
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}
