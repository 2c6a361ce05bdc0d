// Package recommend derives a short, directory-scoped list of recently
// executed tasks from the execution history.
package recommend

import (
	"fmt"
	"sort"

	"cmdpal/internal/task"
)

// DefaultCount is the default number of recommendations shown.
const DefaultCount = 5

// Recent returns up to n distinct task ids recently executed from dir,
// most recent first. Directory comparison is exact string equality.
func Recent(history []task.HistoryEntry, dir string, n int) []string {
	if n <= 0 {
		n = DefaultCount
	}

	var scoped []task.HistoryEntry
	for _, e := range history {
		if e.Directory == dir {
			scoped = append(scoped, e)
		}
	}
	sort.SliceStable(scoped, func(i, j int) bool {
		return scoped[i].Timestamp > scoped[j].Timestamp
	})

	ids := make([]string, 0, n)
	seen := make(map[string]bool)
	for _, e := range scoped {
		if e.TaskID == "" || seen[e.TaskID] {
			continue
		}
		seen[e.TaskID] = true
		ids = append(ids, e.TaskID)
		if len(ids) >= n {
			break
		}
	}
	return ids
}

// Names resolves task ids to display names against the current collection.
// A task deleted since its history entry was written renders as a
// placeholder instead of erroring.
func Names(ids []string, tasks []task.Task) []string {
	byID := make(map[string]string, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, fallbackName(id))
		}
	}
	return names
}

func fallbackName(id string) string {
	short := id
	if len(short) > 6 {
		short = short[:6]
	}
	return fmt.Sprintf("unknown:%s..", short)
}
