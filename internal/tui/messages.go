package tui

import (
	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneMenu Scene = iota
	SceneForm
	SceneResult
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CalculationCompleteMsg signals a calculation has finished
type CalculationCompleteMsg struct {
	Calculator string
	Result     domain.ComputationResult
	Err        error
}
