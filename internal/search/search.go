// Package search ranks tasks against a filter query with a weighted 0-100
// fuzzy score, or supplies the default recency order for an empty query.
package search

import (
	"sort"
	"strings"

	"cmdpal/internal/task"
)

const (
	// DefaultCutoff is the minimum score for a match to be shown.
	DefaultCutoff = 60
	// DefaultLimit caps the number of filtered results.
	DefaultLimit = 50
)

// Searchable builds the string a task is matched against.
func Searchable(t task.Task) string {
	parts := []string{t.Name}
	if t.Description != "" {
		parts = append(parts, t.Description)
	}
	parts = append(parts, t.Command)
	return strings.Join(parts, " ")
}

// Rank orders tasks for display. An empty query returns the whole
// collection by last run time descending (never-run sorts as epoch 0,
// ties keep collection order). A non-empty query scores each task's
// searchable string, keeps scores >= cutoff, sorts descending with stable
// ties, and caps the result at limit. Results are keyed by task id; two
// tasks with identical searchable strings stay distinct.
func Rank(query string, tasks []task.Task, cutoff, limit int) []task.Task {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	if query == "" {
		out := make([]task.Task, len(tasks))
		copy(out, tasks)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LastRunEpoch() > out[j].LastRunEpoch()
		})
		return out
	}

	type scored struct {
		t     task.Task
		score int
	}
	var matches []scored
	for _, t := range tasks {
		if s := Score(Searchable(t), query); s >= cutoff {
			matches = append(matches, scored{t: t, score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]task.Task, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.t)
	}
	return out
}

// Score calculates a weighted 0-100 similarity between a query and a
// candidate string. Exact matches score 100, substring matches score by
// coverage with a word-boundary bonus, and scattered in-order matches are
// scored by density and boundary alignment, capped below substring level.
func Score(candidate, query string) int {
	c := strings.ToLower(candidate)
	q := strings.ToLower(query)

	if q == "" || c == "" {
		return 0
	}
	if c == q {
		return 100
	}

	if idx := strings.Index(c, q); idx >= 0 {
		score := 60 + 40*len(q)/len(c)
		if idx == 0 || isBoundary(c[idx-1]) {
			score += 15
		}
		if score > 99 {
			score = 99
		}
		return score
	}

	raw := subsequenceScore(c, q)
	if raw == 0 {
		return 0
	}
	// Best possible raw score: every query char consecutive, at a word
	// boundary at the start of the string.
	n := len(q)
	best := 10*n + 5*n*(n-1)/2 + 20
	score := raw * 100 / best
	if score > 99 {
		score = 99
	}
	return score
}

// subsequenceScore scores an in-order, possibly scattered match of query
// inside str. Returns 0 unless every query character matches. Consecutive
// runs and word-boundary hits score higher.
func subsequenceScore(str, query string) int {
	score := 0
	qi := 0
	lastMatchIdx := -1
	consecutive := 0

	for i := 0; i < len(str) && qi < len(query); i++ {
		if str[i] != query[qi] {
			continue
		}
		qi++
		score += 10

		if lastMatchIdx == i-1 {
			consecutive++
			score += consecutive * 5
		} else {
			consecutive = 0
		}

		if i == 0 {
			score += 20
		} else if isBoundary(str[i-1]) {
			score += 15
		}

		lastMatchIdx = i
	}

	if qi < len(query) {
		return 0
	}
	return score
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '-' || b == '_' || b == '.' || b == '/'
}
