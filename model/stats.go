package model

// DashboardMetrics is the full set of derived statistics rendered on
// the dashboard. It is recomputed from the task list on every fetch
// and never persisted.
type DashboardMetrics struct {
	Summary             TaskSummary       `json:"summary"`
	WeeklySeries        []WeeklyPoint     `json:"weekly_series"`
	PriorityHistogram   map[int]int       `json:"priority_histogram"`
	PendingByImportance []ImportanceCount `json:"pending_by_importance"`
	WeekdayInsight      *WeekdayInsight   `json:"weekday_insight,omitempty"`
	TopDays             []DayCount        `json:"top_days"`
	BottomDays          []DayCount        `json:"bottom_days"`
	WeekendVsWeekday    WeekendSplit      `json:"weekend_vs_weekday"`
	Heatmap             map[string]int    `json:"heatmap"`
}

type TaskSummary struct {
	TotalTasks          int `json:"totalTasks"`
	CompletedTasks      int `json:"completedTasks"`
	PendingTasks        int `json:"pendingTasks"`
	OverdueTasks        int `json:"overdueTasks"`
	CompletionRate      int `json:"completionRate"`
	AveragePriority     int `json:"averagePriority"`
	TasksCompletedToday int `json:"tasksCompletedToday"`
	CurrentStreak       int `json:"currentStreak"`
}

// WeeklyPoint is one day of the trailing-week completion series.
type WeeklyPoint struct {
	Day       string `json:"day"`  // short weekday label, e.g. "Mon"
	Date      string `json:"date"` // ISO YYYY-MM-DD
	Completed int    `json:"completed"`
}

type ImportanceCount struct {
	Importance int `json:"importance"`
	Tasks      int `json:"tasks"`
}

type WeekdayInsight struct {
	MostProductiveDay  string `json:"most_productive_day"`
	LeastProductiveDay string `json:"least_productive_day"`
	TrendMessage       string `json:"trend_message"`
}

// DayCount pairs a calendar date with its completion count.
type DayCount struct {
	Date  string `json:"date"` // ISO YYYY-MM-DD
	Count int    `json:"count"`
}

type WeekendSplit struct {
	Weekday int `json:"weekday"`
	Weekend int `json:"weekend"`
}
