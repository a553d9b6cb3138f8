package usecase

import (
	"testing"
	"time"

	"main/model"
)

func TestValidateTask(t *testing.T) {
	longTitle := make([]byte, maxTitleLength+1)
	for i := range longTitle {
		longTitle[i] = 'a'
	}

	tests := []struct {
		name    string
		task    *model.Task
		wantErr bool
	}{
		{
			name:    "valid task",
			task:    &model.Task{Title: "write report", Importance: 5},
			wantErr: false,
		},
		{
			name:    "empty title",
			task:    &model.Task{Title: "", Importance: 5},
			wantErr: true,
		},
		{
			name:    "whitespace title",
			task:    &model.Task{Title: "   ", Importance: 5},
			wantErr: true,
		},
		{
			name:    "title too long",
			task:    &model.Task{Title: string(longTitle), Importance: 5},
			wantErr: true,
		},
		{
			name:    "importance too low",
			task:    &model.Task{Title: "ok", Importance: 0},
			wantErr: true,
		},
		{
			name:    "importance too high",
			task:    &model.Task{Title: "ok", Importance: 11},
			wantErr: true,
		},
		{
			name:    "importance boundaries",
			task:    &model.Task{Title: "ok", Importance: model.ImportanceMax},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTask(tt.task)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateTask() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSortTasksForDisplay(t *testing.T) {
	now := time.Date(2025, time.March, 19, 12, 0, 0, 0, time.UTC)

	completed := &model.Task{TaskID: "completed", Title: "done", Importance: 10, Completed: true}
	overdue := &model.Task{TaskID: "overdue", Title: "late", Importance: 3, DueDate: now.AddDate(0, 0, -2)}
	important := &model.Task{TaskID: "important", Title: "big", Importance: 9, DueDate: now.AddDate(0, 0, 5)}
	soon := &model.Task{TaskID: "soon", Title: "near", Importance: 5, DueDate: now.AddDate(0, 0, 1)}
	later := &model.Task{TaskID: "later", Title: "far", Importance: 5, DueDate: now.AddDate(0, 0, 9)}
	undated := &model.Task{TaskID: "undated", Title: "whenever", Importance: 5}

	tasks := []*model.Task{completed, later, undated, soon, important, overdue}
	sortTasksForDisplay(tasks, now)

	want := []string{"overdue", "important", "soon", "later", "undated", "completed"}
	for i, id := range want {
		if tasks[i].TaskID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, tasks[i].TaskID)
		}
	}
}
