package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ulwant/HitungPajakku-sub001/internal/calculation"
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	engine      *calculation.Engine
	calculators []calculator

	// Menu cursor and the calculator whose form is open
	cursor   int
	selected int

	// Form state
	inputs []textinput.Model
	focus  int

	result *domain.ComputationResult

	// Error state
	err error

	loading bool
}

// NewModel creates a new application model around an engine
func NewModel(engine *calculation.Engine) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	return Model{
		currentScene: SceneMenu,
		engine:       engine,
		calculators:  calculators(),
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// openForm builds fresh inputs for the calculator at index i
func (m *Model) openForm(i int) {
	m.selected = i
	m.focus = 0
	m.err = nil

	calc := m.calculators[i]
	m.inputs = make([]textinput.Model, len(calc.Fields))
	for j, f := range calc.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.SetValue(f.Default)
		ti.CharLimit = 32
		ti.Width = 24
		if j == 0 {
			ti.Focus()
		}
		m.inputs[j] = ti
	}
}

// setFocus moves focus to input i, wrapping around
func (m *Model) setFocus(i int) {
	n := len(m.inputs)
	if n == 0 {
		return
	}
	m.focus = (i%n + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// formValues collects the current input values
func (m Model) formValues() values {
	v := make(values, len(m.inputs))
	for i, in := range m.inputs {
		v[i] = in.Value()
	}
	return v
}

// calculateCmd returns a command that runs a calculator against the submitted form
func calculateCmd(engine *calculation.Engine, calc calculator, v values) tea.Cmd {
	return func() tea.Msg {
		res, err := calc.Run(engine, v)
		return CalculationCompleteMsg{Calculator: calc.ID, Result: res, Err: err}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneMenu:
		return "Calculators"
	case SceneForm:
		return "Input"
	case SceneResult:
		return "Result"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
