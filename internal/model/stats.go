package model

import "time"

// HabitStats summarizes a habit's completion history.
type HabitStats struct {
	HabitID          string
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
	CompletionRate   float64
	LastCompleted    *Date
}

// CalendarDay is one day of a single-habit month calendar.
type CalendarDay struct {
	Date      Date
	Completed bool
	Note      string
}

// CalendarSummaryDay is one day of the all-habits month calendar.
type CalendarSummaryDay struct {
	Date      Date
	Completed int
	Total     int
}

// HabitCalendar is one habit's month, one element per day.
type HabitCalendar struct {
	HabitID string
	Year    int
	Month   time.Month
	Days    []CalendarDay
}

// Calendar is the month across all active habits.
type Calendar struct {
	Year  int
	Month time.Month
	Days  []CalendarSummaryDay
}

// Overview aggregates the stats of every active habit.
type Overview struct {
	Habits         []HabitStats
	CompletedToday int
	TotalToday     int
	Today          Date
}
