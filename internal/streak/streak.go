// Package streak computes streaks and completion statistics from the set of
// days on which a habit was completed.
package streak

import (
	"sort"

	"github.com/templui/habitkit/internal/model"
)

// Current counts consecutive completed days ending today. A day that has
// not been logged yet does not break the streak: when today is missing the
// count starts from yesterday. Counting stops at the first missing day.
func Current(days []model.Date, today model.Date) int {
	set := toSet(days)

	cursor := today
	if !set[cursor] {
		cursor = today.AddDays(-1)
		if !set[cursor] {
			return 0
		}
	}

	count := 0
	for set[cursor] {
		count++
		cursor = cursor.AddDays(-1)
	}
	return count
}

// Longest returns the longest run of consecutive completed days.
func Longest(days []model.Date) int {
	sorted := unique(days)
	if len(sorted) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDays(1) == sorted[i] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CompletionRate is the share of days in [from, to] that were completed.
func CompletionRate(days []model.Date, from, to model.Date) float64 {
	if to.Before(from) {
		return 0
	}
	total := from.DaysUntil(to) + 1

	completed := 0
	for d := range toSet(days) {
		if !d.Before(from) && !d.After(to) {
			completed++
		}
	}
	return float64(completed) / float64(total)
}

// Summary holds every statistic derived from one habit's history.
type Summary struct {
	Current        int
	Longest        int
	Total          int
	CompletionRate float64
	LastCompleted  *model.Date
}

// Summarize computes all statistics for a habit created on createdOn.
// Days after today are ignored.
func Summarize(days []model.Date, createdOn, today model.Date) Summary {
	var past []model.Date
	for _, d := range days {
		if !d.After(today) {
			past = append(past, d)
		}
	}

	sorted := unique(past)
	s := Summary{
		Current:        Current(sorted, today),
		Longest:        Longest(sorted),
		Total:          len(sorted),
		CompletionRate: CompletionRate(sorted, createdOn, today),
	}
	if len(sorted) > 0 {
		last := sorted[len(sorted)-1]
		s.LastCompleted = &last
	}
	return s
}

// Within returns the days in [from, to].
func Within(days []model.Date, from, to model.Date) []model.Date {
	var out []model.Date
	for _, d := range days {
		if !d.Before(from) && !d.After(to) {
			out = append(out, d)
		}
	}
	return out
}

func toSet(days []model.Date) map[model.Date]bool {
	set := make(map[model.Date]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

func unique(days []model.Date) []model.Date {
	set := toSet(days)
	out := make([]model.Date, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
