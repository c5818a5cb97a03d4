// Package report renders indicator results for the terminal or as YAML.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/volind/pkg/indicators"
	"github.com/vadiminshakov/volind/pkg/indicators/volume"
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	subtle    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(highlight).
			Padding(0, 2).
			Bold(true)

	metaStyle = lipgloss.NewStyle().Foreground(subtle)
)

const missing = "-"

// Table writes the last tail rows of results as a table. A non-positive tail
// writes every row.
func Table(w io.Writer, title string, results []volume.Result, tail int) error {
	if _, err := fmt.Fprintln(w, headerStyle.Render(title)); err != nil {
		return err
	}
	for _, r := range results {
		meta := fmt.Sprintf("%s  category=%s", r.Name, r.Category)
		if r.Backend != "" {
			meta += "  backend=" + r.Backend
		}
		if _, err := fmt.Fprintln(w, metaStyle.Render(meta)); err != nil {
			return err
		}
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	header := table.Row{"#"}
	configs := []table.ColumnConfig{}
	for i, r := range results {
		header = append(header, r.Name)
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	rows := rowCount(results)
	from := 0
	if tail > 0 && tail < rows {
		from = rows - tail
	}
	for i := from; i < rows; i++ {
		row := table.Row{label(results, i)}
		for _, r := range results {
			// shorter results are aligned on their most recent sample
			row = append(row, formatValue(r.At(i-(rows-r.Len()))))
		}
		t.AppendRow(row)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Summary writes a one-line volume analysis.
func Summary(w io.Writer, a indicators.VolumeAnalysis) error {
	line := fmt.Sprintf("volume %s  avg(%d) %s  relative %sx  spikes %d",
		a.CurrentVolume.StringFixed(2), a.Period, a.AverageVolume.StringFixed(2),
		a.RelativeVolume.StringFixed(2), len(a.Spikes))
	_, err := fmt.Fprintln(w, metaStyle.Render(line))
	return err
}

// Output is the YAML representation of a result. Missing samples are null.
type Output struct {
	Name     string      `yaml:"name"`
	Category string      `yaml:"category"`
	Backend  string      `yaml:"backend,omitempty"`
	Index    []time.Time `yaml:"index,omitempty"`
	Values   []*float64  `yaml:"values"`
}

// YAML writes results as a YAML document.
func YAML(w io.Writer, results []volume.Result) error {
	out := make([]Output, len(results))
	for i, r := range results {
		values := make([]*float64, r.Len())
		for j, v := range r.Values {
			if math.IsNaN(v) {
				continue
			}
			v := v
			values[j] = &v
		}
		out[i] = Output{
			Name:     r.Name,
			Category: r.Category,
			Backend:  r.Backend,
			Index:    r.Index,
			Values:   values,
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func rowCount(results []volume.Result) int {
	n := 0
	for _, r := range results {
		if r.Len() > n {
			n = r.Len()
		}
	}
	return n
}

// label returns the timestamp of row i when a result spanning every row
// carries an index, the row number otherwise.
func label(results []volume.Result, i int) string {
	rows := rowCount(results)
	for _, r := range results {
		if r.Len() == rows && len(r.Index) == rows {
			return r.Index[i].UTC().Format(time.RFC3339)
		}
	}
	return strconv.Itoa(i)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
