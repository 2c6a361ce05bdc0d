package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cmdpal/internal/logging"
)

// DefaultHistoryCap is the default maximum number of history entries kept.
const DefaultHistoryCap = 200

// HistoryEntry records a single task execution. Entries are immutable once
// written; the directory is the one the tool was launched from, not the
// task's configured cwd.
type HistoryEntry struct {
	Timestamp float64 `json:"timestamp"`
	TaskID    string  `json:"task_id"`
	Directory string  `json:"directory"`
}

// LoadHistory reads the execution history. An unreadable or corrupt file
// degrades to an empty history.
func (s *Store) LoadHistory() []HistoryEntry {
	data, err := os.ReadFile(s.historyPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Error("failed to read history file", "path", s.historyPath, "error", err)
		}
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logging.Error("history file is not valid JSON", "path", s.historyPath, "error", err)
		return nil
	}
	return entries
}

// SaveHistory writes the history, pruning to cap entries first. A cap of
// zero or less falls back to DefaultHistoryCap.
func (s *Store) SaveHistory(entries []HistoryEntry, limit int) error {
	if err := os.MkdirAll(filepath.Dir(s.historyPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	entries = PruneHistory(entries, limit)
	if entries == nil {
		entries = []HistoryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(s.historyPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// AppendHistory records an execution of the given task from the given
// directory, pruning the oldest entries past the cap.
func (s *Store) AppendHistory(taskID, directory string, limit int) error {
	entries := s.LoadHistory()
	entries = append(entries, HistoryEntry{
		Timestamp: epochNow(),
		TaskID:    taskID,
		Directory: directory,
	})
	return s.SaveHistory(entries, limit)
}

// PruneHistory keeps the cap most recent entries by timestamp, oldest
// dropped first. Order among equal timestamps is preserved.
func PruneHistory(entries []HistoryEntry, limit int) []HistoryEntry {
	if limit <= 0 {
		limit = DefaultHistoryCap
	}
	if len(entries) <= limit {
		return entries
	}
	pruned := make([]HistoryEntry, len(entries))
	copy(pruned, entries)
	sort.SliceStable(pruned, func(i, j int) bool {
		return pruned[i].Timestamp < pruned[j].Timestamp
	})
	return pruned[len(pruned)-limit:]
}
