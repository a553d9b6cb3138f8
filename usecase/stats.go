package usecase

import (
	"math"
	"sort"
	"time"

	"main/model"
)

const (
	// Streak walk never looks further back than this many days.
	maxStreakDays = 30

	// Heatmap covers the trailing window [today-heatmapWindowDays, today].
	heatmapWindowDays = 180

	// Number of days in the weekly completion series.
	weeklySeriesDays = 7
)

// Trend messages for the weekday productivity insight.
const (
	trendWeekdays = "You are more productive on weekdays than weekends in the last 7 days."
	trendWeekends = "You are more productive on weekends than weekdays in the last 7 days."
	trendBalanced = "Your productivity is balanced across the week in the last 7 days."
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// StatsService derives dashboard statistics from a task list. It is
// stateless apart from the timezone used for calendar-day bucketing;
// every method is a pure function of its arguments, safe to call from
// concurrent refreshes.
type StatsService struct {
	loc *time.Location
}

// NewStatsService returns a stats service that buckets days in the
// given timezone. A nil location falls back to the host's local zone.
func NewStatsService(loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{loc: loc}
}

// ComputeDashboard runs every sub-calculation over the same task
// snapshot and reference instant. The input is never mutated.
func (svc *StatsService) ComputeDashboard(tasks []*model.Task, now time.Time, topN int) *model.DashboardMetrics {
	return &model.DashboardMetrics{
		Summary:             svc.CalculateSummary(tasks, now),
		WeeklySeries:        svc.WeeklySeries(tasks, now),
		PriorityHistogram:   svc.PriorityHistogram(tasks),
		PendingByImportance: svc.PendingByImportance(tasks),
		WeekdayInsight:      svc.ProductivityInsight(tasks, now),
		TopDays:             svc.TopDays(tasks, topN),
		BottomDays:          svc.BottomDays(tasks, topN),
		WeekendVsWeekday:    svc.WeekendSplit(tasks),
		Heatmap:             svc.Heatmap(tasks, now),
	}
}

// CalculateSummary produces the headline counters, rates and the
// current completion streak.
func (svc *StatsService) CalculateSummary(tasks []*model.Task, now time.Time) model.TaskSummary {
	today := svc.dayStart(now)

	summary := model.TaskSummary{
		TotalTasks: len(tasks),
	}

	importanceSum := 0
	for _, task := range tasks {
		importanceSum += task.Importance

		if task.Completed {
			summary.CompletedTasks++
		}

		if !task.Completed && !task.DueDate.IsZero() &&
			svc.dayStart(task.DueDate).Before(today) {
			summary.OverdueTasks++
		}

		if task.HasCompletion() && svc.sameDay(task.CompletedAt, today) {
			summary.TasksCompletedToday++
		}
	}

	summary.PendingTasks = summary.TotalTasks - summary.CompletedTasks

	if summary.TotalTasks > 0 {
		summary.CompletionRate = int(math.Round(
			float64(summary.CompletedTasks) / float64(summary.TotalTasks) * 100))
		summary.AveragePriority = int(math.Round(
			float64(importanceSum) / float64(summary.TotalTasks)))
	}

	summary.CurrentStreak = svc.currentStreak(tasks, today)

	return summary
}

// currentStreak walks backward from today one calendar day at a time,
// counting consecutive days with at least one completion. The walk
// stops at the first empty day and never exceeds maxStreakDays.
func (svc *StatsService) currentStreak(tasks []*model.Task, today time.Time) int {
	perDay := svc.completionsPerDay(tasks)
	if len(perDay) == 0 {
		return 0
	}

	streak := 0
	current := today
	for i := 0; i < maxStreakDays; i++ {
		if perDay[svc.isoDate(current)] == 0 {
			break
		}
		streak++
		current = current.AddDate(0, 0, -1)
	}
	return streak
}

// WeeklySeries counts completions for each of the 7 calendar days
// ending today, oldest first. Each point carries the short weekday
// label the chart uses on its x-axis.
func (svc *StatsService) WeeklySeries(tasks []*model.Task, now time.Time) []model.WeeklyPoint {
	today := svc.dayStart(now)

	series := make([]model.WeeklyPoint, 0, weeklySeriesDays)
	for i := weeklySeriesDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)

		count := 0
		for _, task := range tasks {
			if !task.HasCompletion() {
				continue
			}
			completed := task.CompletedAt.In(svc.loc)
			if !completed.Before(day) && completed.Before(next) {
				count++
			}
		}

		series = append(series, model.WeeklyPoint{
			Day:       day.Format("Mon"),
			Date:      svc.isoDate(day),
			Completed: count,
		})
	}
	return series
}

// PriorityHistogram groups all tasks by importance. The result is
// sparse: importance values with no tasks are absent.
func (svc *StatsService) PriorityHistogram(tasks []*model.Task) map[int]int {
	histogram := make(map[int]int)
	for _, task := range tasks {
		histogram[task.Importance]++
	}
	return histogram
}

// PendingByImportance counts pending tasks per importance level. All
// ten levels are always present, zero-filled; importance values
// outside 1..10 are dropped rather than rejected.
func (svc *StatsService) PendingByImportance(tasks []*model.Task) []model.ImportanceCount {
	counts := make(map[int]int, model.ImportanceMax)
	for i := model.ImportanceMin; i <= model.ImportanceMax; i++ {
		counts[i] = 0
	}

	for _, task := range tasks {
		if task.Completed {
			continue
		}
		if task.Importance >= model.ImportanceMin && task.Importance <= model.ImportanceMax {
			counts[task.Importance]++
		}
	}

	result := make([]model.ImportanceCount, 0, model.ImportanceMax)
	for i := model.ImportanceMin; i <= model.ImportanceMax; i++ {
		result = append(result, model.ImportanceCount{Importance: i, Tasks: counts[i]})
	}
	return result
}

// ProductivityInsight reports the most and least productive weekday
// over the trailing 7 days, plus a weekday-vs-weekend trend message.
// Returns nil when no completions fall inside the window; the caller
// renders that as "no data yet".
func (svc *StatsService) ProductivityInsight(tasks []*model.Task, now time.Time) *model.WeekdayInsight {
	windowStart := svc.dayStart(now).AddDate(0, 0, -7)

	var dayCounts [7]int
	seen := 0
	for _, task := range tasks {
		if !task.HasCompletion() {
			continue
		}
		completed := task.CompletedAt.In(svc.loc)
		if completed.Before(windowStart) {
			continue
		}
		dayCounts[int(completed.Weekday())]++
		seen++
	}

	if seen == 0 {
		return nil
	}

	// Ties resolve to the lowest weekday index, Sunday first.
	most, least := 0, 0
	for i := 1; i < 7; i++ {
		if dayCounts[i] > dayCounts[most] {
			most = i
		}
		if dayCounts[i] < dayCounts[least] {
			least = i
		}
	}

	weekdaySum := dayCounts[1] + dayCounts[2] + dayCounts[3] + dayCounts[4] + dayCounts[5]
	weekendSum := dayCounts[0] + dayCounts[6]

	trend := trendBalanced
	if weekdaySum > weekendSum {
		trend = trendWeekdays
	} else if weekendSum > weekdaySum {
		trend = trendWeekends
	}

	return &model.WeekdayInsight{
		MostProductiveDay:  weekdayNames[most],
		LeastProductiveDay: weekdayNames[least],
		TrendMessage:       trend,
	}
}

// TopDays returns the n calendar days with the most completions over
// the task list's entire lifetime, re-sorted chronologically for
// display.
func (svc *StatsService) TopDays(tasks []*model.Task, n int) []model.DayCount {
	return svc.rankDays(tasks, n, true)
}

// BottomDays is TopDays's counterpart for the least productive days.
func (svc *StatsService) BottomDays(tasks []*model.Task, n int) []model.DayCount {
	return svc.rankDays(tasks, n, false)
}

func (svc *StatsService) rankDays(tasks []*model.Task, n int, descending bool) []model.DayCount {
	perDay := svc.completionsPerDay(tasks)

	days := make([]model.DayCount, 0, len(perDay))
	for date, count := range perDay {
		days = append(days, model.DayCount{Date: date, Count: count})
	}

	// Equal counts fall back to date order so output is deterministic.
	sort.Slice(days, func(i, j int) bool {
		if days[i].Count != days[j].Count {
			if descending {
				return days[i].Count > days[j].Count
			}
			return days[i].Count < days[j].Count
		}
		return days[i].Date < days[j].Date
	})

	if n >= 0 && len(days) > n {
		days = days[:n]
	}

	// Chronological order for rendering.
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// WeekendSplit classifies every completion by weekday over the task
// list's entire lifetime.
func (svc *StatsService) WeekendSplit(tasks []*model.Task) model.WeekendSplit {
	var split model.WeekendSplit
	for _, task := range tasks {
		if !task.HasCompletion() {
			continue
		}
		switch task.CompletedAt.In(svc.loc).Weekday() {
		case time.Saturday, time.Sunday:
			split.Weekend++
		default:
			split.Weekday++
		}
	}
	return split
}

// Heatmap maps ISO dates to completion counts over the trailing 180
// days. Days without completions are absent; the calendar renderer
// fills the gaps.
func (svc *StatsService) Heatmap(tasks []*model.Task, now time.Time) map[string]int {
	today := svc.dayStart(now)
	windowStart := today.AddDate(0, 0, -heatmapWindowDays)

	heatmap := make(map[string]int)
	for _, task := range tasks {
		if !task.HasCompletion() {
			continue
		}
		day := svc.dayStart(task.CompletedAt)
		if day.Before(windowStart) || day.After(today) {
			continue
		}
		heatmap[svc.isoDate(day)]++
	}
	return heatmap
}

// completionsPerDay buckets every completion by its local calendar
// date, lifetime-wide.
func (svc *StatsService) completionsPerDay(tasks []*model.Task) map[string]int {
	perDay := make(map[string]int)
	for _, task := range tasks {
		if task.HasCompletion() {
			perDay[svc.isoDate(task.CompletedAt.In(svc.loc))]++
		}
	}
	return perDay
}

// dayStart truncates an instant to midnight of its calendar day in
// the service timezone.
func (svc *StatsService) dayStart(t time.Time) time.Time {
	local := t.In(svc.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, svc.loc)
}

func (svc *StatsService) sameDay(t, day time.Time) bool {
	return svc.dayStart(t).Equal(svc.dayStart(day))
}

func (svc *StatsService) isoDate(t time.Time) string {
	return t.In(svc.loc).Format("2006-01-02")
}
