package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdpal/internal/config"
	"cmdpal/internal/task"
)

func testPicker(t *testing.T, tasks []task.Task, history []task.HistoryEntry) Model {
	t.Helper()
	dir := t.TempDir()
	store := task.NewStore(filepath.Join(dir, "tasks.json"), filepath.Join(dir, "history.json"))
	require.NoError(t, store.Save(tasks))

	m := New(config.DefaultConfig(), store, tasks, history, "/launch", nil)
	return press(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyMsg(tp tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: tp} }

func TestPickerFilterAndConfirm(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Name: "build", Command: "make", Cwd: "~/proj"},
		{ID: "2", Name: "unrelated", Command: "zzz", Cwd: "~"},
	}
	m := testPicker(t, tasks, nil)

	m = typeString(t, m, "bui")
	require.Len(t, m.rows, 1)
	assert.Equal(t, "1", m.rows[0].ID)

	m = press(t, m, keyMsg(tea.KeyEnter))

	chosen, values, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "build", chosen.Name)
	assert.Equal(t, "make", chosen.Command)
	assert.Nil(t, values)
}

func TestPickerCancel(t *testing.T) {
	m := testPicker(t, []task.Task{{ID: "1", Name: "build", Command: "make", Cwd: "~"}}, nil)

	m = press(t, m, keyMsg(tea.KeyEsc))

	_, _, ok := m.Selected()
	assert.False(t, ok)
}

func TestPickerGlobalCancelFromParamPrompt(t *testing.T) {
	tasks := []task.Task{{
		ID: "1", Name: "greet", Command: "echo ${name}", Cwd: "~",
		Parameters: []task.Parameter{{Name: "name"}},
	}}
	m := testPicker(t, tasks, nil)

	m = press(t, m, keyMsg(tea.KeyEnter))
	require.NotNil(t, m.form)

	m = press(t, m, keyMsg(tea.KeyCtrlC))
	_, _, ok := m.Selected()
	assert.False(t, ok)
}

func TestPickerParameterFlow(t *testing.T) {
	tasks := []task.Task{{
		ID: "1", Name: "greet", Command: "echo ${name}", Cwd: "~",
		Parameters: []task.Parameter{{Name: "name"}},
		LastParams: map[string]string{"name": "old"},
	}}
	m := testPicker(t, tasks, nil)

	// Confirm opens the modal seeded with the last-used value.
	m = press(t, m, keyMsg(tea.KeyEnter))
	require.NotNil(t, m.form)
	assert.Equal(t, "old", m.form.inputs[0].Value())

	// Confirm the form and feed its message back through the picker.
	form, cmd := m.form.Update(keyMsg(tea.KeyEnter))
	m.form = &form
	require.NotNil(t, cmd)
	m = press(t, m, cmd())

	chosen, values, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", chosen.ID)
	assert.Equal(t, map[string]string{"name": "old"}, values)
}

func TestPickerParamCancelPreservesQueryAndCursor(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Name: "greet", Command: "echo ${name}", Cwd: "~",
			Parameters: []task.Parameter{{Name: "name"}}},
		{ID: "2", Name: "other greet task", Command: "zzz", Cwd: "~"},
	}
	m := testPicker(t, tasks, nil)

	m = typeString(t, m, "greet")
	m = press(t, m, keyMsg(tea.KeyDown), keyMsg(tea.KeyUp))
	require.Equal(t, 0, m.cursor)

	m = press(t, m, keyMsg(tea.KeyEnter))
	require.NotNil(t, m.form)

	// Cancelling the prompt returns to browsing with everything intact.
	form, cmd := m.form.Update(keyMsg(tea.KeyEsc))
	m.form = &form
	require.NotNil(t, cmd)
	m = press(t, m, cmd())

	assert.Nil(t, m.form)
	assert.Equal(t, "greet", m.input.Value())
	assert.Equal(t, 0, m.cursor)
	_, _, ok := m.Selected()
	assert.False(t, ok)
}

func TestPickerCursorIdentityAcrossRefilter(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", Name: "alpha job", Command: "aaa", Cwd: "~"},
		{ID: "b", Name: "beta job", Command: "bbb", Cwd: "~"},
		{ID: "c", Name: "gamma job", Command: "ccc", Cwd: "~"},
	}
	m := testPicker(t, tasks, nil)

	m = press(t, m, keyMsg(tea.KeyDown))
	row, ok := taskAt(m.rows, m.cursor)
	require.True(t, ok)
	require.Equal(t, "b", row.ID)

	// Narrowing the filter re-ranks the rows; the cursor follows the
	// task, not its old numeric index.
	m = typeString(t, m, "beta")
	row, ok = taskAt(m.rows, m.cursor)
	require.True(t, ok)
	assert.Equal(t, "b", row.ID)
}

func TestPickerRecommendationBanner(t *testing.T) {
	tasks := []task.Task{{ID: "1", Name: "build", Command: "make", Cwd: "~"}}
	history := []task.HistoryEntry{{Timestamp: 1, TaskID: "1", Directory: "/launch"}}

	m := testPicker(t, tasks, history)
	assert.Contains(t, m.banner, "build")

	elsewhere := testPicker(t, tasks, []task.HistoryEntry{{Timestamp: 1, TaskID: "1", Directory: "/other"}})
	assert.Empty(t, elsewhere.banner)
}

func TestPickerViewRenders(t *testing.T) {
	tasks := []task.Task{{ID: "1", Name: "build", Command: "make", Cwd: "~/proj", Description: "compile"}}
	m := testPicker(t, tasks, nil)

	view := m.View()
	assert.Contains(t, view, "build")
	assert.Contains(t, view, "cmdpal")
}
