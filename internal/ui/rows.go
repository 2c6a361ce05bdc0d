package ui

import (
	"fmt"
	"strings"

	"cmdpal/internal/recommend"
	"cmdpal/internal/search"
	"cmdpal/internal/task"
)

// noSelection is the cursor value when the row list is empty.
const noSelection = -1

// deriveRows computes the displayed row order for the current query: the
// recency order for an empty query, the fuzzy ranking otherwise.
func deriveRows(query string, tasks []task.Task, cutoff, limit int) []task.Task {
	return search.Rank(query, tasks, cutoff, limit)
}

// nextCursor places the cursor after the rows have been recomputed. If the
// task that was under the cursor is still present it keeps the cursor on
// that task at its new position; otherwise the previous numeric index is
// clamped into the new bounds. An empty row list yields no selection. This
// keeps the user's attention from silently jumping to an unrelated row
// purely because of re-sorting.
func nextCursor(prevID string, prevIndex int, rows []task.Task) int {
	if len(rows) == 0 {
		return noSelection
	}
	if prevID != "" {
		for i, t := range rows {
			if t.ID == prevID {
				return i
			}
		}
	}
	if prevIndex < 0 {
		return 0
	}
	if prevIndex >= len(rows) {
		return len(rows) - 1
	}
	return prevIndex
}

// taskAt returns the row at the given cursor, if it is in bounds.
func taskAt(rows []task.Task, cursor int) (task.Task, bool) {
	if cursor < 0 || cursor >= len(rows) {
		return task.Task{}, false
	}
	return rows[cursor], true
}

// previewMarkdown builds the markdown shown in the preview pane for a task.
func previewMarkdown(t task.Task) string {
	var b strings.Builder
	b.WriteString("**Command:**\n\n")
	b.WriteString("```sh\n")
	b.WriteString(t.Command)
	b.WriteString("\n```\n\n")
	b.WriteString("**Directory:** `")
	b.WriteString(t.Cwd)
	b.WriteString("`\n")
	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(t.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// bannerText builds the directory-scoped recommendation line. An empty
// string means the banner is hidden.
func bannerText(history []task.HistoryEntry, tasks []task.Task, launchDir string, count int, styles *Styles) string {
	ids := recommend.Recent(history, launchDir, count)
	if len(ids) == 0 {
		return ""
	}
	names := recommend.Names(ids, tasks)
	parts := make([]string, 0, len(names))
	for i, name := range names {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, name))
	}
	return styles.BannerLabel.Render("Recent here:") + " " + strings.Join(parts, "  ")
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
