package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jackyw/quizcard/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with QuizCard styling.
type TextInput struct {
	Model     textinput.Model
	submitted bool
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.submitted {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		view += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("(submitted)")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the current input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// Submit locks the input against further edits.
func (t *TextInput) Submit() {
	t.submitted = true
	t.Model.Blur()
}

// Submitted reports whether the input has been locked.
func (t TextInput) Submitted() bool {
	return t.submitted
}

// Reset clears the value and unlocks the input.
func (t *TextInput) Reset() {
	t.submitted = false
	t.Model.SetValue("")
	t.Model.Focus()
}
