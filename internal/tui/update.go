package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			// stay on the form so the value can be corrected
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		res := msg.Result
		m.result = &res
		m.previousScene = m.currentScene
		m.currentScene = SceneResult
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		return m.back()
	}

	// Letters are form input while a form is open
	if m.currentScene != SceneForm {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			return m, navigate(SceneHelp)
		}
	}

	return m.updateCurrentScene(msg)
}

// back goes one level up: result to form, form to menu, help to where it was opened
func (m Model) back() (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneForm:
		m.err = nil
		return m, navigate(SceneMenu)
	case SceneResult:
		return m, navigate(SceneForm)
	case SceneHelp:
		if m.previousScene == SceneHelp {
			return m, navigate(SceneMenu)
		}
		return m, navigate(m.previousScene)
	}
	return m, nil
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: s}
	}
}

// updateCurrentScene delegates updates to the current scene
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneMenu:
		return m.updateMenu(msg)
	case SceneForm:
		return m.updateForm(msg)
	case SceneResult:
		return m.updateResult(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.calculators)-1 {
			m.cursor++
		}
	case "enter":
		m.openForm(m.cursor)
		return m, navigate(SceneForm)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			m.loading = true
			return m, calculateCmd(m.engine, m.calculators[m.selected], m.formValues())
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "e":
		return m, navigate(SceneForm)
	case "m", "enter":
		return m, navigate(SceneMenu)
	}
	return m, nil
}
