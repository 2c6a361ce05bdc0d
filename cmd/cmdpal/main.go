package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cmdpal/internal/config"
	"cmdpal/internal/logging"
	"cmdpal/internal/runner"
	"cmdpal/internal/task"
	"cmdpal/internal/ui"
	"cmdpal/internal/watcher"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cmdpal",
		Short: "Find and run your shell command tasks",
		Long: `Cmdpal stores named shell-command tasks and re-runs them quickly from an
interactive, filterable list. Run it without arguments to open the picker;
use the subcommands to manage the task collection.`,
		SilenceUsage: true,
		RunE:         runPicker,
	}

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cmdpal version %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runPicker opens the interactive picker and dispatches whatever the user
// confirmed once the TUI has exited.
func runPicker(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Logging.Enabled {
		if err := os.MkdirAll(config.Dir(), 0755); err == nil {
			if err := logging.EnableFileLogging(config.Dir(), logging.Level(cfg.Logging.Level)); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to enable logging: %v\n", err)
			}
		}
		defer logging.Close()
	}

	store := task.NewStore(config.TasksFile(), config.HistoryFile())
	tasks := loadAndResave(store)
	history := store.LoadHistory()

	launchDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	var w *watcher.Watcher
	if cfg.Watcher.Enabled {
		if w, err = watcher.New(store.TasksPath()); err != nil {
			logging.Warn("failed to start tasks-file watcher", "error", err)
			w = nil
		} else {
			defer w.Close()
		}
	}

	model := ui.New(cfg, store, tasks, history, launchDir, w)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	picked, ok := final.(ui.Model)
	if !ok {
		return nil
	}
	chosen, values, ok := picked.Selected()
	if !ok {
		return nil
	}

	dispatcher := runner.New(store, launchDir, cfg.History.MaxEntries)
	if err := dispatcher.Run(chosen, values); err != nil {
		switch {
		case errors.Is(err, runner.ErrDirNotFound):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		case errors.Is(err, runner.ErrCommandNotFound):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "Error: failed to run task: %v\n", err)
		}
		os.Exit(1)
	}
	return nil
}

// loadAndResave loads the task collection and writes it straight back when
// ids had to be generated, so the generated ids become stable.
func loadAndResave(store *task.Store) []task.Task {
	tasks, needsResave := store.Load()
	if needsResave {
		fmt.Fprintln(os.Stderr, "Info: resaving tasks file with newly generated IDs...")
		if err := store.Save(tasks); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to resave tasks file: %v\n", err)
		}
	}
	return tasks
}
