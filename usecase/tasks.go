package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/google/uuid"
)

const maxTitleLength = 200

type TaskService struct {
	repo *repository.TasksRepo
}

func NewTaskService(repo *repository.TasksRepo) *TaskService {
	return &TaskService{repo: repo}
}

// Get the user's tasks, sorted the way the task list renders them
func (svc *TaskService) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	sortTasksForDisplay(tasks, time.Now())
	return tasks, nil
}

// sortTasksForDisplay orders tasks the way the task list renders them:
// incomplete before complete, overdue first within the incomplete block,
// then importance descending, then due date ascending.
func sortTasksForDisplay(tasks []*model.Task, now time.Time) {
	sort.Slice(tasks, func(i, j int) bool {
		// Incomplete tasks first
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}

		// Overdue items float to the top of the incomplete block
		if !tasks[i].Completed && !tasks[j].Completed {
			iOverdue := !tasks[i].DueDate.IsZero() && tasks[i].DueDate.Before(now)
			jOverdue := !tasks[j].DueDate.IsZero() && tasks[j].DueDate.Before(now)
			if iOverdue != jOverdue {
				return iOverdue
			}
		}

		// Then by importance
		if tasks[i].Importance != tasks[j].Importance {
			return tasks[i].Importance > tasks[j].Importance
		}

		// Then by due date (if both exist)
		if !tasks[i].DueDate.IsZero() && !tasks[j].DueDate.IsZero() {
			return tasks[i].DueDate.Before(tasks[j].DueDate)
		}
		return !tasks[i].DueDate.IsZero()
	})
}

func (svc *TaskService) CreateTask(ctx context.Context, task *model.Task) error {
	if err := validateTask(task); err != nil {
		return err
	}

	if task.TaskID == "" {
		task.TaskID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	// Completion state is owned by the toggle operation; a freshly
	// created task is always open.
	task.Completed = false
	task.CompletedAt = time.Time{}

	if err := svc.repo.CreateTask(ctx, task); err != nil {
		return err
	}

	utils.TrackTaskOperation("create")
	return nil
}

func (svc *TaskService) UpdateTask(ctx context.Context, taskID string, userID string, updates *model.Task) (*model.Task, error) {
	if err := validateTask(updates); err != nil {
		return nil, err
	}

	if err := svc.repo.UpdateTask(ctx, taskID, userID, updates); err != nil {
		return nil, err
	}

	utils.TrackTaskOperation("update")
	return svc.repo.GetTask(ctx, taskID, userID)
}

func (svc *TaskService) DeleteTask(ctx context.Context, taskID string, userID string) error {
	if err := svc.repo.DeleteTask(ctx, taskID, userID); err != nil {
		return err
	}
	utils.TrackTaskOperation("delete")
	return nil
}

// ToggleTaskComplete flips completion state. The repository stamps or
// clears completed_at accordingly.
func (svc *TaskService) ToggleTaskComplete(ctx context.Context, taskID string, userID string) (*model.Task, error) {
	task, err := svc.repo.ToggleTaskComplete(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	utils.TrackTaskOperation("toggle")
	return task, nil
}

func (svc *TaskService) CountUserTasks(ctx context.Context, userID string) (int, error) {
	return svc.repo.CountAllTasks(ctx, userID)
}

// SearchTasks filters on a case-insensitive title substring
func (svc *TaskService) SearchTasks(ctx context.Context, userID string, searchText string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(searchText))
	if needle == "" {
		return tasks, nil
	}

	var matched []*model.Task
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

func (svc *TaskService) GetTasksByGroup(ctx context.Context, userID string, group string) ([]*model.Task, error) {
	if strings.TrimSpace(group) == "" {
		return nil, errors.New("group name is required")
	}
	return svc.repo.GetTasksByGroup(ctx, userID, group)
}

// GetImportantTasks returns tasks at or above an importance threshold
func (svc *TaskService) GetImportantTasks(ctx context.Context, userID string, threshold int) ([]*model.Task, error) {
	if threshold < model.ImportanceMin || threshold > model.ImportanceMax {
		return nil, fmt.Errorf("threshold must be between %d and %d",
			model.ImportanceMin, model.ImportanceMax)
	}

	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	var important []*model.Task
	for _, task := range tasks {
		if task.Importance >= threshold {
			important = append(important, task)
		}
	}
	return important, nil
}

// GetOverdueTasks returns incomplete tasks whose due date has passed
func (svc *TaskService) GetOverdueTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var overdue []*model.Task
	for _, task := range tasks {
		if !task.Completed && !task.DueDate.IsZero() && task.DueDate.Before(now) {
			overdue = append(overdue, task)
		}
	}
	return overdue, nil
}

// GetUpcomingTasks returns incomplete tasks due within the next N days
func (svc *TaskService) GetUpcomingTasks(ctx context.Context, userID string, days int) ([]*model.Task, error) {
	if days <= 0 {
		return nil, errors.New("days must be positive")
	}

	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, days)

	var upcoming []*model.Task
	for _, task := range tasks {
		if task.Completed || task.DueDate.IsZero() {
			continue
		}
		if task.DueDate.After(now) && task.DueDate.Before(cutoff) {
			upcoming = append(upcoming, task)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	return upcoming, nil
}

func (svc *TaskService) GetCompletedTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	var completed []*model.Task
	for _, task := range tasks {
		if task.Completed {
			completed = append(completed, task)
		}
	}
	return completed, nil
}

func (svc *TaskService) GetPendingTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.repo.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	var pending []*model.Task
	for _, task := range tasks {
		if !task.Completed {
			pending = append(pending, task)
		}
	}
	return pending, nil
}

// DetachGroup clears the label from every task in a deleted group
func (svc *TaskService) DetachGroup(ctx context.Context, userID string, group string) error {
	return svc.repo.ClearGroup(ctx, userID, group)
}

// helpers

func validateTask(task *model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return errors.New("task title is required")
	}
	if len(task.Title) > maxTitleLength {
		return fmt.Errorf("task title cannot exceed %d characters", maxTitleLength)
	}
	if task.Importance < model.ImportanceMin || task.Importance > model.ImportanceMax {
		return fmt.Errorf("importance must be between %d and %d",
			model.ImportanceMin, model.ImportanceMax)
	}
	return nil
}
