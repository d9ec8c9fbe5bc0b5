package dto

import "github.com/templui/habitkit/internal/model"

type StatsResponse struct {
	HabitID          string  `json:"habit_id"`
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	TotalCompletions int     `json:"total_completions"`
	CompletionRate   float64 `json:"completion_rate"`
	LastCompleted    *string `json:"last_completed"`
}

type OverviewResponse struct {
	Today          string           `json:"today"`
	CompletedToday int              `json:"completed_today"`
	TotalToday     int              `json:"total_today"`
	Habits         []*StatsResponse `json:"habits"`
}

type CalendarDayResponse struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Note      string `json:"note,omitempty"`
}

type HabitCalendarResponse struct {
	HabitID string                `json:"habit_id"`
	Year    int                   `json:"year"`
	Month   int                   `json:"month"`
	Days    []CalendarDayResponse `json:"days"`
}

type CalendarSummaryDayResponse struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type CalendarResponse struct {
	Year  int                          `json:"year"`
	Month int                          `json:"month"`
	Days  []CalendarSummaryDayResponse `json:"days"`
}

func NewStatsResponse(stats *model.HabitStats) (*StatsResponse, error) {
	out := &StatsResponse{}
	err := copyInto(out, stats)
	return out, err
}

func NewOverviewResponse(overview *model.Overview) (*OverviewResponse, error) {
	out := &OverviewResponse{
		Today:          overview.Today.String(),
		CompletedToday: overview.CompletedToday,
		TotalToday:     overview.TotalToday,
		Habits:         make([]*StatsResponse, 0, len(overview.Habits)),
	}
	for i := range overview.Habits {
		st, err := NewStatsResponse(&overview.Habits[i])
		if err != nil {
			return nil, err
		}
		out.Habits = append(out.Habits, st)
	}
	return out, nil
}

func NewHabitCalendarResponse(cal *model.HabitCalendar) (*HabitCalendarResponse, error) {
	out := &HabitCalendarResponse{}
	err := copyInto(out, cal)
	return out, err
}

func NewCalendarResponse(cal *model.Calendar) (*CalendarResponse, error) {
	out := &CalendarResponse{}
	err := copyInto(out, cal)
	return out, err
}
