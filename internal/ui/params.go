package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cmdpal/internal/task"
)

// paramForm is the modal collecting parameter values before a run. It is
// seeded from the task's last-used values; confirming returns the entered
// values, cancelling returns to browsing with query and cursor untouched.
type paramForm struct {
	task   task.Task
	defs   []task.Parameter
	inputs []textinput.Model
	focus  int
	styles *Styles
}

func newParamForm(t task.Task, defs []task.Parameter, styles *Styles) paramForm {
	inputs := make([]textinput.Model, len(defs))
	for i, def := range defs {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 0
		in.SetValue(t.LastParams[def.Name])
		if i == 0 {
			in.Focus()
			in.CursorEnd()
		}
		inputs[i] = in
	}
	return paramForm{
		task:   t,
		defs:   defs,
		inputs: inputs,
		focus:  0,
		styles: styles,
	}
}

// paramsConfirmedMsg carries the entered values back to the picker.
type paramsConfirmedMsg struct {
	task   task.Task
	values map[string]string
}

// paramsCancelledMsg closes the modal without running anything.
type paramsCancelledMsg struct{}

func (f paramForm) Update(msg tea.Msg) (paramForm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if len(f.inputs) == 0 {
			return f, nil
		}
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd
	}

	switch keyMsg.String() {
	case "esc":
		return f, func() tea.Msg { return paramsCancelledMsg{} }
	case "enter":
		values := make(map[string]string, len(f.defs))
		for i, def := range f.defs {
			values[def.Name] = f.inputs[i].Value()
		}
		t := f.task
		return f, func() tea.Msg { return paramsConfirmedMsg{task: t, values: values} }
	case "tab", "down":
		return f.moveFocus(1), nil
	case "shift+tab", "up":
		return f.moveFocus(-1), nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f paramForm) moveFocus(delta int) paramForm {
	if len(f.inputs) == 0 {
		return f
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	f.inputs[f.focus].CursorEnd()
	return f
}

func (f paramForm) View(width int) string {
	var b strings.Builder
	b.WriteString(f.styles.DialogTitle.Render("Parameters: " + f.task.Name))
	b.WriteString("\n")
	for i, def := range f.defs {
		b.WriteString("\n")
		b.WriteString(f.styles.DialogPrompt.Render(def.PromptText()))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.styles.Help.Render("enter confirm · tab next · esc cancel"))

	dialogWidth := 60
	if width > 0 && dialogWidth > width-4 {
		dialogWidth = width - 4
	}
	return f.styles.Dialog.Width(dialogWidth).Render(b.String())
}

// overlay centers the dialog in the available space.
func centerDialog(dialog string, width, height int) string {
	if width <= 0 || height <= 0 {
		return dialog
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
