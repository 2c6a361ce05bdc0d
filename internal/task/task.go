package task

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"cmdpal/internal/logging"
)

var (
	// ErrNotFound means no task matched the given identifier.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguousName means a name matched more than one task; callers
	// must disambiguate by id.
	ErrAmbiguousName = errors.New("task name is ambiguous")
)

// Parameter defines a placeholder in a task's command template. The
// placeholder token is ${name}; Prompt is shown when collecting a value.
type Parameter struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt,omitempty"`
}

// PromptText returns the prompt, deriving one from the name if unset.
func (p Parameter) PromptText() string {
	if p.Prompt != "" {
		return p.Prompt
	}
	return fmt.Sprintf("Enter value for '%s':", p.Name)
}

// Task represents a single named command template.
type Task struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Command     string            `json:"command"`
	Cwd         string            `json:"cwd"`
	Description string            `json:"description,omitempty"`
	LastRun     *float64          `json:"last_run_timestamp"`
	Parameters  []Parameter       `json:"parameters,omitempty"`
	LastParams  map[string]string `json:"last_param_values,omitempty"`
}

// New creates a task with a fresh id. Name and command must be non-empty;
// an empty cwd defaults to "~".
func New(name, command, cwd, description string) (Task, error) {
	t := Task{
		ID:          uuid.NewString(),
		Name:        name,
		Command:     command,
		Cwd:         cwd,
		Description: description,
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	if t.Cwd == "" {
		t.Cwd = "~"
	}
	return t, nil
}

// Validate checks the task's structural invariants.
func (t Task) Validate() error {
	if t.Name == "" {
		return errors.New("task name cannot be empty")
	}
	if t.Command == "" {
		return errors.New("task command cannot be empty")
	}
	return nil
}

// LastRunEpoch returns the last run timestamp, treating never-run as 0 so
// it sorts after everything that has run.
func (t Task) LastRunEpoch() float64 {
	if t.LastRun == nil {
		return 0
	}
	return *t.LastRun
}

// ParameterDefs returns the task's validated parameter definitions. A
// malformed set (empty or duplicate names) degrades the task to "no
// parameters" rather than failing the load.
func (t Task) ParameterDefs() []Parameter {
	if len(t.Parameters) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(t.Parameters))
	for _, p := range t.Parameters {
		if p.Name == "" || seen[p.Name] {
			logging.Warn("invalid parameter definitions, ignoring", "task", t.Name)
			return nil
		}
		seen[p.Name] = true
	}
	return t.Parameters
}

// FindByID returns the task with the given id, if present.
func FindByID(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// FindByName returns all tasks with the given name (case-sensitive).
func FindByName(tasks []Task, name string) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

// Resolve finds a task by id first, then by unique name. A name shared by
// several tasks returns ErrAmbiguousName; no match returns ErrNotFound.
func Resolve(tasks []Task, identifier string) (Task, error) {
	if t, ok := FindByID(tasks, identifier); ok {
		return t, nil
	}
	matches := FindByName(tasks, identifier)
	switch len(matches) {
	case 0:
		return Task{}, fmt.Errorf("%w: %q", ErrNotFound, identifier)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		return Task{}, fmt.Errorf("%w: %q matches ids %v", ErrAmbiguousName, identifier, ids)
	}
}
