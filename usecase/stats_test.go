package usecase

import (
	"reflect"
	"testing"
	"time"

	"main/model"
)

// Fixed reference instant for every test: Wednesday 19 March 2025,
// 15:00 in a fixed UTC+5:30 zone.
var (
	testLoc = time.FixedZone("IST", 5*3600+1800)
	testNow = time.Date(2025, time.March, 19, 15, 0, 0, 0, testLoc)
)

func newTestStats() *StatsService {
	return NewStatsService(testLoc)
}

// completedTask returns a completed task whose completion instant is
// daysAgo days before the reference day, at the given hour.
func completedTask(importance, daysAgo, hour int) *model.Task {
	day := time.Date(2025, time.March, 19, hour, 0, 0, 0, testLoc)
	return &model.Task{
		Title:       "done",
		Importance:  importance,
		Completed:   true,
		CompletedAt: day.AddDate(0, 0, -daysAgo),
	}
}

func pendingTask(importance int, due time.Time) *model.Task {
	return &model.Task{
		Title:      "pending task",
		Importance: importance,
		DueDate:    due,
	}
}

func TestCalculateSummaryEmptyList(t *testing.T) {
	svc := newTestStats()

	summary := svc.CalculateSummary(nil, testNow)

	want := model.TaskSummary{}
	if summary != want {
		t.Errorf("expected zero summary for empty input, got %+v", summary)
	}

	metrics := svc.ComputeDashboard(nil, testNow, 7)
	if metrics.WeekdayInsight != nil {
		t.Error("expected no weekday insight for empty input")
	}
	if len(metrics.Heatmap) != 0 {
		t.Errorf("expected empty heatmap, got %d entries", len(metrics.Heatmap))
	}
	if len(metrics.TopDays) != 0 || len(metrics.BottomDays) != 0 {
		t.Error("expected empty day rankings for empty input")
	}
	if len(metrics.PendingByImportance) != 10 {
		t.Errorf("expected 10 importance buckets, got %d", len(metrics.PendingByImportance))
	}
}

func TestCalculateSummary(t *testing.T) {
	svc := newTestStats()
	yesterday := testNow.AddDate(0, 0, -1)
	tomorrow := testNow.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		tasks []*model.Task
		want  model.TaskSummary
	}{
		{
			name:  "single task completed today",
			tasks: []*model.Task{completedTask(8, 0, 10)},
			want: model.TaskSummary{
				TotalTasks:          1,
				CompletedTasks:      1,
				CompletionRate:      100,
				AveragePriority:     8,
				TasksCompletedToday: 1,
				CurrentStreak:       1,
			},
		},
		{
			name:  "single pending task due yesterday",
			tasks: []*model.Task{pendingTask(5, yesterday)},
			want: model.TaskSummary{
				TotalTasks:      1,
				PendingTasks:    1,
				OverdueTasks:    1,
				AveragePriority: 5,
			},
		},
		{
			name:  "due later today is not overdue",
			tasks: []*model.Task{pendingTask(5, testNow.Add(-time.Hour))},
			want: model.TaskSummary{
				TotalTasks:      1,
				PendingTasks:    1,
				AveragePriority: 5,
			},
		},
		{
			name:  "due tomorrow is not overdue",
			tasks: []*model.Task{pendingTask(5, tomorrow)},
			want: model.TaskSummary{
				TotalTasks:      1,
				PendingTasks:    1,
				AveragePriority: 5,
			},
		},
		{
			name: "rates are rounded",
			tasks: []*model.Task{
				completedTask(4, 0, 9),
				completedTask(5, 1, 9),
				pendingTask(5, time.Time{}),
			},
			want: model.TaskSummary{
				TotalTasks:          3,
				CompletedTasks:      2,
				PendingTasks:        1,
				CompletionRate:      67, // round(66.66)
				AveragePriority:     5,  // round(14/3)
				TasksCompletedToday: 1,
				CurrentStreak:       2,
			},
		},
		{
			name: "completed without timestamp still counts as completed",
			tasks: []*model.Task{
				{Title: "legacy", Importance: 6, Completed: true},
			},
			want: model.TaskSummary{
				TotalTasks:      1,
				CompletedTasks:  1,
				CompletionRate:  100,
				AveragePriority: 6,
			},
		},
		{
			name: "reopened task with stale completion timestamp",
			tasks: []*model.Task{
				{Title: "reopened", Importance: 6, CompletedAt: testNow},
			},
			want: model.TaskSummary{
				TotalTasks:      1,
				PendingTasks:    1,
				AveragePriority: 6,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.CalculateSummary(tt.tasks, testNow)
			if got != tt.want {
				t.Errorf("CalculateSummary() = %+v, want %+v", got, tt.want)
			}
			if got.CompletedTasks+got.PendingTasks != got.TotalTasks {
				t.Error("completed + pending != total")
			}
			if got.CompletionRate < 0 || got.CompletionRate > 100 {
				t.Errorf("completion rate %d out of range", got.CompletionRate)
			}
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	svc := newTestStats()

	consecutive := func(days int) []*model.Task {
		tasks := make([]*model.Task, 0, days)
		for i := 0; i < days; i++ {
			tasks = append(tasks, completedTask(5, i, 11))
		}
		return tasks
	}

	tests := []struct {
		name  string
		tasks []*model.Task
		want  int
	}{
		{"no completions", nil, 0},
		{"ten consecutive days ending today", consecutive(10), 10},
		{
			"gap at yesterday breaks the streak",
			[]*model.Task{completedTask(7, 0, 9), completedTask(7, 3, 9)},
			1,
		},
		{
			"nothing today means no streak",
			[]*model.Task{completedTask(7, 1, 9), completedTask(7, 2, 9)},
			0,
		},
		{"streak is capped at 30", consecutive(45), 30},
		{
			"multiple completions on one day count once",
			[]*model.Task{completedTask(3, 0, 8), completedTask(4, 0, 20)},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.CalculateSummary(tt.tasks, testNow).CurrentStreak
			if got != tt.want {
				t.Errorf("streak = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 30 {
				t.Errorf("streak %d out of [0,30]", got)
			}
		})
	}
}

func TestWeeklySeries(t *testing.T) {
	svc := newTestStats()

	tasks := []*model.Task{
		completedTask(5, 0, 10), // today
		completedTask(5, 0, 23),
		completedTask(5, 6, 1), // oldest day still in the window
		completedTask(5, 7, 12), // outside the window
	}

	series := svc.WeeklySeries(tasks, testNow)

	if len(series) != 7 {
		t.Fatalf("expected 7 points, got %d", len(series))
	}

	// Window is 13..19 March 2025; oldest first.
	if series[0].Date != "2025-03-13" || series[6].Date != "2025-03-19" {
		t.Errorf("unexpected window: %s .. %s", series[0].Date, series[6].Date)
	}
	if series[0].Day != "Thu" || series[6].Day != "Wed" {
		t.Errorf("unexpected labels: %s .. %s", series[0].Day, series[6].Day)
	}
	if series[0].Completed != 1 {
		t.Errorf("oldest day count = %d, want 1", series[0].Completed)
	}
	if series[6].Completed != 2 {
		t.Errorf("today count = %d, want 2", series[6].Completed)
	}

	total := 0
	for _, p := range series {
		total += p.Completed
	}
	if total != 3 {
		t.Errorf("series total = %d, want 3 (one completion out of window)", total)
	}
}

func TestPriorityHistogram(t *testing.T) {
	svc := newTestStats()

	tasks := []*model.Task{
		completedTask(3, 0, 10),
		completedTask(3, 1, 10),
		pendingTask(9, time.Time{}),
	}

	got := svc.PriorityHistogram(tasks)
	want := map[int]int{3: 2, 9: 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PriorityHistogram() = %v, want %v", got, want)
	}
}

func TestPendingByImportance(t *testing.T) {
	svc := newTestStats()

	tasks := []*model.Task{
		pendingTask(1, time.Time{}),
		pendingTask(1, time.Time{}),
		pendingTask(10, time.Time{}),
		pendingTask(15, time.Time{}), // out of range, dropped
		pendingTask(0, time.Time{}),  // out of range, dropped
		completedTask(1, 0, 10),      // completed, not pending
	}

	got := svc.PendingByImportance(tasks)

	if len(got) != 10 {
		t.Fatalf("expected 10 buckets, got %d", len(got))
	}
	for i, bucket := range got {
		if bucket.Importance != i+1 {
			t.Errorf("bucket %d has importance %d", i, bucket.Importance)
		}
		if bucket.Tasks < 0 {
			t.Errorf("negative count in bucket %d", i)
		}
	}
	if got[0].Tasks != 2 || got[9].Tasks != 1 {
		t.Errorf("unexpected counts: importance 1 = %d, importance 10 = %d",
			got[0].Tasks, got[9].Tasks)
	}
	if got[4].Tasks != 0 {
		t.Errorf("importance 5 should be zero-filled, got %d", got[4].Tasks)
	}
}

func TestProductivityInsight(t *testing.T) {
	svc := newTestStats()

	t.Run("absent without recent completions", func(t *testing.T) {
		old := []*model.Task{completedTask(5, 20, 10)}
		if insight := svc.ProductivityInsight(old, testNow); insight != nil {
			t.Errorf("expected nil insight, got %+v", insight)
		}
	})

	t.Run("saturday completions dominate", func(t *testing.T) {
		// 15 March 2025 is the Saturday inside the trailing week.
		tasks := []*model.Task{
			completedTask(5, 4, 9),
			completedTask(5, 4, 14),
			completedTask(5, 4, 20),
		}
		insight := svc.ProductivityInsight(tasks, testNow)
		if insight == nil {
			t.Fatal("expected an insight")
		}
		if insight.MostProductiveDay != "Saturday" {
			t.Errorf("most productive = %s, want Saturday", insight.MostProductiveDay)
		}
		if insight.LeastProductiveDay != "Sunday" {
			t.Errorf("least productive = %s, want Sunday (lowest tied index)",
				insight.LeastProductiveDay)
		}
		if insight.TrendMessage != trendWeekends {
			t.Errorf("trend = %q, want weekend-dominant message", insight.TrendMessage)
		}
	})

	t.Run("weekday dominant trend", func(t *testing.T) {
		tasks := []*model.Task{
			completedTask(5, 0, 9), // Wednesday
			completedTask(5, 1, 9), // Tuesday
		}
		insight := svc.ProductivityInsight(tasks, testNow)
		if insight == nil {
			t.Fatal("expected an insight")
		}
		if insight.TrendMessage != trendWeekdays {
			t.Errorf("trend = %q, want weekday-dominant message", insight.TrendMessage)
		}
		if insight.MostProductiveDay != "Tuesday" {
			// Tuesday and Wednesday tie at 1; Tuesday has the lower index.
			t.Errorf("most productive = %s, want Tuesday", insight.MostProductiveDay)
		}
	})

	t.Run("balanced trend", func(t *testing.T) {
		tasks := []*model.Task{
			completedTask(5, 0, 9), // Wednesday
			completedTask(5, 4, 9), // Saturday
		}
		insight := svc.ProductivityInsight(tasks, testNow)
		if insight == nil {
			t.Fatal("expected an insight")
		}
		if insight.TrendMessage != trendBalanced {
			t.Errorf("trend = %q, want balanced message", insight.TrendMessage)
		}
	})
}

func TestRankDays(t *testing.T) {
	svc := newTestStats()

	// Three completions on 17 March, two on 15 March, one on 10 March.
	tasks := []*model.Task{
		completedTask(5, 2, 9), completedTask(5, 2, 12), completedTask(5, 2, 18),
		completedTask(5, 4, 9), completedTask(5, 4, 12),
		completedTask(5, 9, 9),
	}

	top := svc.TopDays(tasks, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 top days, got %d", len(top))
	}
	// Ranked by count, then re-sorted chronologically.
	if top[0].Date != "2025-03-15" || top[0].Count != 2 {
		t.Errorf("top[0] = %+v, want 2025-03-15 x2", top[0])
	}
	if top[1].Date != "2025-03-17" || top[1].Count != 3 {
		t.Errorf("top[1] = %+v, want 2025-03-17 x3", top[1])
	}

	bottom := svc.BottomDays(tasks, 2)
	if len(bottom) != 2 {
		t.Fatalf("expected 2 bottom days, got %d", len(bottom))
	}
	if bottom[0].Date != "2025-03-10" || bottom[0].Count != 1 {
		t.Errorf("bottom[0] = %+v, want 2025-03-10 x1", bottom[0])
	}
	if bottom[1].Date != "2025-03-15" || bottom[1].Count != 2 {
		t.Errorf("bottom[1] = %+v, want 2025-03-15 x2", bottom[1])
	}

	all := svc.TopDays(tasks, 7)
	if len(all) != 3 {
		t.Errorf("asking for more days than exist should return all, got %d", len(all))
	}
}

func TestWeekendSplit(t *testing.T) {
	svc := newTestStats()

	tasks := []*model.Task{
		completedTask(5, 0, 9),   // Wednesday
		completedTask(5, 4, 9),   // Saturday
		completedTask(5, 3, 9),   // Sunday
		completedTask(5, 100, 9), // lifetime, not windowed (9 Dec 2024, Monday)
		{Title: "no timestamp", Completed: true},
	}

	split := svc.WeekendSplit(tasks)
	if split.Weekend != 2 || split.Weekday != 2 {
		t.Errorf("split = %+v, want 2 weekend / 2 weekday", split)
	}
}

func TestHeatmap(t *testing.T) {
	svc := newTestStats()

	tasks := []*model.Task{
		completedTask(5, 0, 9),
		completedTask(5, 0, 22),
		completedTask(5, 180, 9), // window edge, included
		completedTask(5, 181, 9), // outside
	}

	heatmap := svc.Heatmap(tasks, testNow)

	if heatmap["2025-03-19"] != 2 {
		t.Errorf("today count = %d, want 2", heatmap["2025-03-19"])
	}
	if len(heatmap) != 2 {
		t.Errorf("expected 2 dates, got %d: %v", len(heatmap), heatmap)
	}

	windowStart := svc.dayStart(testNow).AddDate(0, 0, -180)
	for date := range heatmap {
		day, err := time.ParseInLocation("2006-01-02", date, testLoc)
		if err != nil {
			t.Fatalf("bad heatmap key %q: %v", date, err)
		}
		if day.Before(windowStart) || day.After(svc.dayStart(testNow)) {
			t.Errorf("heatmap date %s outside trailing window", date)
		}
	}
}

func TestComputeDashboardIsPure(t *testing.T) {
	svc := newTestStats()

	tasks := []*model.Task{
		completedTask(8, 0, 10),
		completedTask(3, 4, 9),
		pendingTask(5, testNow.AddDate(0, 0, -2)),
		pendingTask(10, time.Time{}),
	}

	first := svc.ComputeDashboard(tasks, testNow, 7)
	second := svc.ComputeDashboard(tasks, testNow, 7)

	if !reflect.DeepEqual(first, second) {
		t.Error("same input and instant must produce identical metrics")
	}
}
