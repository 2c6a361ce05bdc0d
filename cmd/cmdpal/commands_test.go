package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdpal/internal/config"
	"cmdpal/internal/task"
)

// runCmd executes a command with a temp config home and captures stdout.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAddAndListRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	out, err := runCmd(t, newAddCmd(), "--name", "build", "--cmd", "make", "--cwd", "~/proj")
	require.NoError(t, err)
	assert.Contains(t, out, `Task "build" added`)

	out, err = runCmd(t, newListCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "build")
	assert.Contains(t, out, "~/proj")

	// The stored record carries a generated id and the literal command.
	store := task.NewStore(config.TasksFile(), config.HistoryFile())
	tasks, needsResave := store.Load()
	require.Len(t, tasks, 1)
	assert.False(t, needsResave)
	assert.NotEmpty(t, tasks[0].ID)
	assert.Equal(t, "make", tasks[0].Command)
}

func TestAddRequiresNameAndCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runCmd(t, newAddCmd(), "--name", "build")
	assert.Error(t, err)
}

func TestListEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	out, err := runCmd(t, newListCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks defined yet.")
}

func TestEditByName(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runCmd(t, newAddCmd(), "--name", "build", "--cmd", "make")
	require.NoError(t, err)

	out, err := runCmd(t, newEditCmd(), "build", "--cmd", "make -j4")
	require.NoError(t, err)
	assert.Contains(t, out, "updated")

	store := task.NewStore(config.TasksFile(), config.HistoryFile())
	tasks, _ := store.Load()
	require.Len(t, tasks, 1)
	assert.Equal(t, "make -j4", tasks[0].Command)
}

func TestEditAmbiguousNameFails(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runCmd(t, newAddCmd(), "--name", "dup", "--cmd", "one")
	require.NoError(t, err)
	_, err = runCmd(t, newAddCmd(), "--name", "dup", "--cmd", "two")
	require.NoError(t, err)

	_, err = runCmd(t, newEditCmd(), "dup", "--cmd", "three")
	assert.ErrorIs(t, err, task.ErrAmbiguousName)
}

func TestEditNotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runCmd(t, newEditCmd(), "missing", "--cmd", "x")
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestDeleteForce(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runCmd(t, newAddCmd(), "--name", "build", "--cmd", "make")
	require.NoError(t, err)

	out, err := runCmd(t, newDeleteCmd(), "build", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	store := task.NewStore(config.TasksFile(), config.HistoryFile())
	tasks, _ := store.Load()
	assert.Empty(t, tasks)
}

func TestDeleteDeclined(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runCmd(t, newAddCmd(), "--name", "build", "--cmd", "make")
	require.NoError(t, err)

	cmd := newDeleteCmd()
	cmd.SetIn(strings.NewReader("n\n"))
	out, err := runCmd(t, cmd, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled.")

	store := task.NewStore(config.TasksFile(), config.HistoryFile())
	tasks, _ := store.Load()
	assert.Len(t, tasks, 1)
}

func TestPathCmd(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	out, err := runCmd(t, newPathCmd())
	require.NoError(t, err)
	assert.Contains(t, out, home)
	assert.Contains(t, out, "tasks.json")
}
