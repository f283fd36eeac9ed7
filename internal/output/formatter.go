package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// Formatter renders a computation result
type Formatter interface {
	Name() string
	Format(res *domain.ComputationResult) ([]byte, error)
}

// FormatterFunc adapts a function to Formatter
type FormatterFunc struct {
	ID string
	F  func(res *domain.ComputationResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(res *domain.ComputationResult) ([]byte, error) { return f.F(res) }

// ConsoleFormatter prints the summary line followed by the full breakdown
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(res *domain.ComputationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	WriteBreakdown(buf, *res)
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, Summary(*res))
	return buf.Bytes(), nil
}

// SummaryFormatter prints the summary line only
type SummaryFormatter struct{}

func (SummaryFormatter) Name() string { return "summary" }

func (SummaryFormatter) Format(res *domain.ComputationResult) ([]byte, error) {
	return []byte(Summary(*res) + "\n"), nil
}

// JSONFormatter renders the result record as JSON
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(res *domain.ComputationResult) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(res, "", "  ")
	}
	return json.Marshal(res)
}

// CSVFormatter renders one row per line item: section, label, base, rate, amount
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(res *domain.ComputationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{{"Section", "Label", "Base", "Rate", "Amount"}}
	rows = append(rows, []string{"gross", string(res.Kind), "", "", res.Gross.StringFixed(0)})
	for _, d := range res.Deductions {
		rows = append(rows, []string{"deduction", d.Label, "", "", d.Amount.StringFixed(0)})
	}
	rows = append(rows, []string{"taxable_base", "", "", "", res.TaxableBase.StringFixed(0)})
	for _, b := range res.Brackets {
		rows = append(rows, []string{"bracket", b.Lower.StringFixed(0), b.Taxed.StringFixed(0), b.Rate.String(), b.Tax.StringFixed(2)})
	}
	for _, tl := range res.TaxLines {
		rows = append(rows, []string{"tax_line", tl.Label, tl.Base.StringFixed(0), tl.Rate.String(), tl.Amount.StringFixed(0)})
	}
	rows = append(rows,
		[]string{"tax", "", "", "", res.Tax.StringFixed(0)},
		[]string{"net", "", "", "", res.Net.StringFixed(0)},
		[]string{"effective_rate", "", "", res.EffectiveRate.String(), ""},
	)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var registry = map[string]Formatter{
	"console": ConsoleFormatter{},
	"summary": SummaryFormatter{},
	"json":    JSONFormatter{Pretty: true},
	"csv":     CSVFormatter{},
	"html":    HTMLFormatter{},
}

var aliases = map[string]string{
	"text":  "console",
	"table": "console",
	"brief": "summary",
}

// GetFormatterByName resolves a formatter name or alias; nil when unknown
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return registry[name]
}

// AvailableFormatterNames lists the registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for n := range aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted writes a formatted result to a timestamped file in the working directory
func WriteFormatted(f Formatter, res *domain.ComputationResult, ext string) (string, error) {
	data, err := f.Format(res)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("hitungpajak_%s_%s.%s", res.Kind, time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
