package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ulwant/HitungPajakku-sub001/internal/output"
	"github.com/ulwant/HitungPajakku-sub001/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneMenu:
		content = m.renderMenu()
	case SceneForm:
		content = m.renderForm()
	case SceneResult:
		content = m.renderResult()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("HitungPajak - Indonesian tax calculator")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneForm || m.currentScene == SceneResult {
		breadcrumb = fmt.Sprintf("%s / %s", m.calculators[m.selected].Title, breadcrumb)
	}
	version := fmt.Sprintf("regulation %s", m.engine.Regulation.Version)

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb+" • "+version))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneMenu:
		shortcuts = []string{formatShortcut("↑/↓", "select"), formatShortcut("enter", "open"), formatShortcut("?", "help"), formatShortcut("q", "quit")}
	case SceneForm:
		shortcuts = []string{formatShortcut("tab", "next field"), formatShortcut("enter", "calculate"), formatShortcut("esc", "back")}
	case SceneResult:
		shortcuts = []string{formatShortcut("e", "edit"), formatShortcut("m", "menu"), formatShortcut("q", "quit")}
	default:
		shortcuts = []string{formatShortcut("esc", "back"), formatShortcut("q", "quit")}
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderMenu() string {
	var b strings.Builder
	for i, c := range m.calculators {
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render("> " + c.Title))
		} else {
			b.WriteString(UnselectedItemStyle.Render("  " + c.Title))
		}
		b.WriteString("\n")
	}
	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderForm() string {
	var b strings.Builder
	calc := m.calculators[m.selected]
	for i, f := range calc.Fields {
		label := ParameterLabelStyle.Render(f.Label)
		if i == m.focus {
			label = SelectedItemStyle.Width(26).Render(f.Label)
		}
		b.WriteString(label + m.inputs[i].View() + "\n")
	}
	if m.loading {
		b.WriteString("\n" + InfoStyle.Render("Calculating..."))
	}
	if m.err != nil {
		b.WriteString("\n" + ErrorStyle.Render("Error: "+m.err.Error()))
	}
	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderResult() string {
	if m.result == nil {
		return BorderStyle.Render("No result yet")
	}
	columns := 4
	if m.width < 110 {
		columns = 2
	}
	grid := components.MetricGrid(components.ResultCards(*m.result), columns)

	var buf bytes.Buffer
	buf.WriteString(output.Summary(*m.result) + "\n\n")
	output.WriteBreakdown(&buf, *m.result)

	return lipgloss.JoinVertical(lipgloss.Left, grid, BorderStyle.Render(strings.TrimRight(buf.String(), "\n")))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"↑/↓ or k/j", "move through the calculator list"},
		{"enter", "open a calculator, next field, calculate on the last field"},
		{"tab/shift+tab", "move between fields"},
		{"e", "edit the inputs of the last result"},
		{"m", "back to the calculator list"},
		{"esc", "go back"},
		{"q/ctrl+c", "quit"},
	}
	var b strings.Builder
	b.WriteString("Amounts accept Indonesian grouping (1.250.000). Yes/no fields take y or n.\n\n")
	for _, r := range rows {
		b.WriteString(HelpKeyStyle.Width(16).Render(r[0]) + HelpDescStyle.Render(r[1]) + "\n")
	}
	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}
