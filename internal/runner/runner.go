// Package runner performs the execution bookkeeping and process launch
// for a chosen task: timestamp update, history append, parameter
// substitution, working-directory resolution and the shell spawn.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cmdpal/internal/logging"
	"cmdpal/internal/task"
)

var (
	// ErrDirNotFound means the task's resolved working directory does
	// not exist; the command is not spawned.
	ErrDirNotFound = errors.New("working directory not found")
	// ErrCommandNotFound means the shell could not resolve the
	// executable (exit status 127).
	ErrCommandNotFound = errors.New("command not found")
)

// Dispatcher runs chosen tasks and records the bookkeeping around them.
type Dispatcher struct {
	store      *task.Store
	launchDir  string
	historyCap int

	// Stdout/Stderr receive the run banner and warnings. The spawned
	// command itself inherits Stdin/Stdout/Stderr.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// New creates a dispatcher recording history against launchDir, the
// directory the tool was launched from.
func New(store *task.Store, launchDir string, historyCap int) *Dispatcher {
	return &Dispatcher{
		store:      store,
		launchDir:  launchDir,
		historyCap: historyCap,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
	}
}

// Run executes the task with the given parameter values (nil when the task
// has none) and blocks until the process exits. Bookkeeping (timestamp,
// history, last parameter values) happens before the working-directory
// check, so a run that aborts on a missing directory still counts as run.
// A non-zero exit is reported as a warning, not an error.
func (d *Dispatcher) Run(t task.Task, values map[string]string) error {
	// 1. Best-effort timestamp update.
	if err := d.store.UpdateLastRun(t.ID); err != nil {
		fmt.Fprintf(d.Stderr, "Warning: failed to update run timestamp: %v\n", err)
		logging.Warn("failed to update run timestamp", "task", t.ID, "error", err)
	}

	// 2. History entry, recorded against the launch directory rather
	// than the task's configured cwd.
	if err := d.store.AppendHistory(t.ID, d.launchDir, d.historyCap); err != nil {
		fmt.Fprintf(d.Stderr, "Warning: failed to record history: %v\n", err)
		logging.Warn("failed to record history", "task", t.ID, "error", err)
	}

	// 3. Remember the entered values for the next parameter prompt.
	if values != nil {
		if err := d.store.UpdateLastParams(t.ID, values); err != nil {
			fmt.Fprintf(d.Stderr, "Warning: failed to store parameter values: %v\n", err)
			logging.Warn("failed to store parameter values", "task", t.ID, "error", err)
		}
	}

	command := t.Command
	if values != nil {
		command = Substitute(command, values)
	}

	runDir := ExpandHome(t.Cwd)
	if info, err := os.Stat(runDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDirNotFound, runDir)
	}

	d.printBanner(t.Name, runDir, command)

	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = runDir
	cmd.Stdin = d.Stdin
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr

	err := cmd.Run()
	if err == nil {
		fmt.Fprintf(d.Stdout, "\nTask %q completed.\n", t.Name)
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		// 127 is the shell's "command not found"; report it distinctly.
		if code == 127 {
			base := command
			if fields := strings.Fields(command); len(fields) > 0 {
				base = fields[0]
			}
			return fmt.Errorf("%w: %q (is it installed and in your PATH?)", ErrCommandNotFound, base)
		}
		fmt.Fprintf(d.Stderr, "\nWarning: task exited with non-zero status: %d\n", code)
		return nil
	}

	return fmt.Errorf("failed to run task: %w", err)
}

func (d *Dispatcher) printBanner(name, dir, command string) {
	header := fmt.Sprintf("--- Running Task: %s ---", name)
	fmt.Fprintf(d.Stdout, "\n%s\n", header)
	fmt.Fprintf(d.Stdout, "Directory: %s\n", dir)
	fmt.Fprintf(d.Stdout, "Command:   %s\n", command)
	fmt.Fprintln(d.Stdout, strings.Repeat("-", len(header)))
}

// ExpandHome expands a leading "~" to the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
