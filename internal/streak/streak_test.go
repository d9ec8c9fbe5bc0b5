package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/habitkit/internal/model"
)

var today = model.Date{Year: 2026, Month: time.March, Day: 10}

func daysAgo(offsets ...int) []model.Date {
	days := make([]model.Date, 0, len(offsets))
	for _, o := range offsets {
		days = append(days, today.AddDays(-o))
	}
	return days
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name string
		days []model.Date
		want int
	}{
		{"no entries", nil, 0},
		{"only today", daysAgo(0), 1},
		{"two consecutive days ending today", daysAgo(0, 1), 2},
		{"grace day: yesterday and the day before", daysAgo(1, 2), 2},
		{"missing today and yesterday", daysAgo(2, 3, 4), 0},
		{"stops at first gap", daysAgo(0, 1, 2, 4, 5), 3},
		{"duplicates count once", daysAgo(0, 0, 1), 2},
		{"future days are not part of the streak", append(daysAgo(0), today.AddDays(1)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Current(tt.days, today))
		})
	}
}

func TestCurrentAcrossMonthBoundary(t *testing.T) {
	first := model.Date{Year: 2026, Month: time.March, Day: 1}
	days := []model.Date{
		{Year: 2026, Month: time.February, Day: 27},
		{Year: 2026, Month: time.February, Day: 28},
		first,
	}

	assert.Equal(t, 3, Current(days, first))
}

func TestLongest(t *testing.T) {
	assert.Equal(t, 0, Longest(nil))
	assert.Equal(t, 1, Longest(daysAgo(5)))
	assert.Equal(t, 3, Longest(daysAgo(0, 4, 5, 6, 9, 10)))
	assert.Equal(t, 2, Longest(daysAgo(1, 1, 2)))
}

func TestCompletionRate(t *testing.T) {
	from := today.AddDays(-9)

	assert.InDelta(t, 0.3, CompletionRate(daysAgo(0, 1, 2), from, today), 1e-9)
	assert.InDelta(t, 1.0, CompletionRate(daysAgo(0), today, today), 1e-9)
	assert.Zero(t, CompletionRate(daysAgo(0), today, from))
	assert.InDelta(t, 0.1, CompletionRate(daysAgo(0, 20), from, today), 1e-9)
}

func TestSummarize(t *testing.T) {
	createdOn := today.AddDays(-9)
	days := append(daysAgo(1, 2, 5, 6, 7, 8), today.AddDays(2))

	s := Summarize(days, createdOn, today)

	assert.Equal(t, 2, s.Current)
	assert.Equal(t, 4, s.Longest)
	assert.Equal(t, 6, s.Total)
	assert.InDelta(t, 0.6, s.CompletionRate, 1e-9)
	require.NotNil(t, s.LastCompleted)
	assert.Equal(t, today.AddDays(-1), *s.LastCompleted)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, today, today)

	assert.Zero(t, s.Current)
	assert.Zero(t, s.Longest)
	assert.Zero(t, s.Total)
	assert.Nil(t, s.LastCompleted)
}

func TestWithin(t *testing.T) {
	days := daysAgo(0, 3, 8)
	got := Within(days, today.AddDays(-5), today)

	assert.Equal(t, daysAgo(0, 3), got)
}
