package services

import (
	"testing"
	"time"

	"main/model"
)

func TestFindDueSoon(t *testing.T) {
	now := time.Date(2025, time.March, 19, 15, 0, 0, 0, time.UTC)
	window := 6 * time.Hour

	task := func(id string, due time.Time, completed bool) *model.Task {
		return &model.Task{
			TaskID:    id,
			UserID:    "user-1",
			Title:     "task " + id,
			DueDate:   due,
			Completed: completed,
		}
	}

	tests := []struct {
		name    string
		tasks   []*model.Task
		wantIDs []string
	}{
		{
			name:    "no tasks",
			tasks:   nil,
			wantIDs: nil,
		},
		{
			name: "inside window",
			tasks: []*model.Task{
				task("a", now.Add(2*time.Hour), false),
			},
			wantIDs: []string{"a"},
		},
		{
			name: "overdue excluded",
			tasks: []*model.Task{
				task("a", now.Add(-time.Hour), false),
			},
			wantIDs: nil,
		},
		{
			name: "beyond window excluded",
			tasks: []*model.Task{
				task("a", now.Add(7*time.Hour), false),
			},
			wantIDs: nil,
		},
		{
			name: "completed excluded",
			tasks: []*model.Task{
				task("a", now.Add(2*time.Hour), true),
			},
			wantIDs: nil,
		},
		{
			name: "no due date excluded",
			tasks: []*model.Task{
				task("a", time.Time{}, false),
			},
			wantIDs: nil,
		},
		{
			name: "sorted soonest first",
			tasks: []*model.Task{
				task("later", now.Add(5*time.Hour), false),
				task("sooner", now.Add(time.Hour), false),
				task("middle", now.Add(3*time.Hour), false),
			},
			wantIDs: []string{"sooner", "middle", "later"},
		},
		{
			name: "window boundary inclusive",
			tasks: []*model.Task{
				task("edge", now.Add(window), false),
			},
			wantIDs: []string{"edge"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDueSoon(tt.tasks, now, window)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d tasks, got %d", len(tt.wantIDs), len(got))
			}
			for i, want := range tt.wantIDs {
				if got[i].TaskID != want {
					t.Errorf("position %d: expected task %q, got %q", i, want, got[i].TaskID)
				}
			}
		})
	}
}
