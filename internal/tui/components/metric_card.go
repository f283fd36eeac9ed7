package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
	"github.com/ulwant/HitungPajakku-sub001/internal/output"
	"github.com/ulwant/HitungPajakku-sub001/internal/tui/tuistyles"
)

// MetricCard displays a single figure of a computation with an optional note
type MetricCard struct {
	Label string
	Value string
	Note  string
	Alert bool
	Width int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 26}
}

// NewAmountCard creates a card showing a rupiah amount
func NewAmountCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, output.FormatRupiah(amount))
}

// WithNote adds a line under the value. An alert note is drawn in the danger colour.
func (m *MetricCard) WithNote(note string, alert bool) *MetricCard {
	m.Note = note
	m.Alert = alert
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Note != "" {
		content += "\n" + tuistyles.MetricTrendStyle(!m.Alert).Render(tuistyles.TrendIndicator(!m.Alert)+" "+m.Note)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// ResultCards builds the headline cards of a computation result
func ResultCards(res domain.ComputationResult) []*MetricCard {
	netLabel := "Net"
	if res.AddsToGross() {
		netLabel = "Total payable"
	}

	tax := NewAmountCard("Tax", res.Tax).WithNote("effective "+output.FormatPercentage(res.EffectiveRate), false)
	if res.Surcharged {
		tax.WithNote("no-NPWP surcharge applied", true)
	}

	cards := []*MetricCard{
		NewAmountCard("Gross", res.Gross),
		NewAmountCard("Taxable base", res.TaxableBase),
		tax,
		NewAmountCard(netLabel, res.Net),
	}
	if len(res.Defaulted) > 0 {
		cards[2].WithNote("unknown category, rate defaulted", true)
	}
	return cards
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}

	for i, card := range cards {
		currentRow = append(currentRow, card.Render())

		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
