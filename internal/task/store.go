package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"cmdpal/internal/logging"
)

// Store persists the task collection and the execution history as JSON
// files. Access is open-write-close per call; there is no cross-operation
// locking, so a concurrent external writer wins on a last-write basis.
type Store struct {
	tasksPath   string
	historyPath string
}

// NewStore creates a store over the given file paths.
func NewStore(tasksPath, historyPath string) *Store {
	return &Store{tasksPath: tasksPath, historyPath: historyPath}
}

// TasksPath returns the path of the task collection file.
func (s *Store) TasksPath() string { return s.tasksPath }

// Load reads the task collection. Records missing an id get a freshly
// generated one and the second return reports that a resave is needed.
// Malformed records are skipped with a warning; an unreadable or corrupt
// file degrades to an empty collection.
func (s *Store) Load() ([]Task, bool) {
	data, err := os.ReadFile(s.tasksPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Error("failed to read tasks file", "path", s.tasksPath, "error", err)
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logging.Error("tasks file is not a valid JSON list", "path", s.tasksPath, "error", err)
		return nil, false
	}

	tasks := make([]Task, 0, len(raw))
	needsResave := false
	for i, entry := range raw {
		var t Task
		if err := json.Unmarshal(entry, &t); err != nil {
			logging.Warn("skipping malformed task record", "index", i, "error", err)
			continue
		}
		if err := t.Validate(); err != nil {
			logging.Warn("skipping invalid task record", "index", i, "error", err)
			continue
		}
		if t.Cwd == "" {
			t.Cwd = "~"
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
			needsResave = true
			logging.Info("generated id for task without one", "task", t.Name, "id", t.ID)
		}
		tasks = append(tasks, t)
	}

	return tasks, needsResave
}

// Save writes the full task collection, replacing previous content.
func (s *Store) Save(tasks []Task) error {
	if err := os.MkdirAll(filepath.Dir(s.tasksPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := os.WriteFile(s.tasksPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write tasks file: %w", err)
	}
	return nil
}

// UpdateLastRun stamps the task's last run time with the current time and
// saves the collection. A vanished task id is a silent no-op: the task may
// have been deleted since it was selected.
func (s *Store) UpdateLastRun(taskID string) error {
	tasks, _ := s.Load()
	for i := range tasks {
		if tasks[i].ID == taskID {
			now := epochNow()
			tasks[i].LastRun = &now
			return s.Save(tasks)
		}
	}
	logging.Debug("task vanished before timestamp update", "id", taskID)
	return nil
}

// UpdateLastParams stores the parameter values used for the task's latest
// run so the next parameter prompt can be seeded from them. A vanished
// task id is a silent no-op.
func (s *Store) UpdateLastParams(taskID string, values map[string]string) error {
	tasks, _ := s.Load()
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].LastParams = values
			return s.Save(tasks)
		}
	}
	logging.Debug("task vanished before param-value update", "id", taskID)
	return nil
}

// epochNow returns the current time as fractional epoch seconds, matching
// the stored timestamp representation.
func epochNow() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
