package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and then every message its command produces
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		switch out.(type) {
		case NavigateMsg, CalculationCompleteMsg, ErrorMsg:
		default:
			return m
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func indexOf(t *testing.T, m Model, id string) int {
	t.Helper()
	for i, c := range m.calculators {
		if c.ID == id {
			return i
		}
	}
	t.Fatalf("calculator %s not registered", id)
	return -1
}

func TestModel_WageCalculation(t *testing.T) {
	m := NewModel(nil)
	assert.Equal(t, SceneMenu, m.currentScene)

	m = send(t, m, enter)
	require.Equal(t, SceneForm, m.currentScene)
	require.Equal(t, "pph21", m.calculators[m.selected].ID)

	m.inputs[0].SetValue("10.000.000")
	for i := 0; i < len(m.inputs)-1; i++ {
		m = send(t, m, enter)
	}
	assert.Equal(t, len(m.inputs)-1, m.focus)

	m = send(t, m, enter)
	require.Equal(t, SceneResult, m.currentScene)
	require.NotNil(t, m.result)
	assert.Equal(t, domain.KindWageAnnual, m.result.Kind)
	assert.True(t, m.result.Tax.Equal(domain.Rupiah(2_820_000)), "tax %s", m.result.Tax)
	assert.Contains(t, m.View(), "Rp2.820.000")

	m = send(t, m, runes("e"))
	assert.Equal(t, SceneForm, m.currentScene)
	assert.Equal(t, "10.000.000", m.inputs[0].Value(), "editing keeps the previous inputs")
}

func TestModel_InvalidInputStaysOnForm(t *testing.T) {
	m := NewModel(nil)
	m.cursor = indexOf(t, m, "denda")
	m = send(t, m, enter)

	m.inputs[0].SetValue("1.000.000")
	m.inputs[1].SetValue("31/03/2025")
	m.inputs[2].SetValue("2025-06-30")
	m.setFocus(len(m.inputs) - 1)

	m = send(t, m, enter)
	assert.Equal(t, SceneForm, m.currentScene)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "invalid date")

	m.inputs[1].SetValue("2025-03-31")
	m = send(t, m, enter)
	require.Equal(t, SceneResult, m.currentScene)
	assert.Equal(t, domain.KindPenalty, m.result.Kind)
}

func TestModel_Navigation(t *testing.T) {
	m := NewModel(nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)

	m = send(t, m, runes("?"))
	assert.Equal(t, SceneHelp, m.currentScene)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneMenu, m.currentScene)

	m = send(t, m, enter)
	require.Equal(t, SceneForm, m.currentScene)
	next, _ := m.Update(runes("q"))
	m = next.(Model)
	assert.Equal(t, SceneForm, m.currentScene, "q is text while a form is open")
	assert.Contains(t, m.inputs[0].Value(), "q")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneMenu, m.currentScene)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModel_WindowSize(t *testing.T) {
	m := send(t, NewModel(nil), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Contains(t, m.View(), "regulation 2025.1")
}
