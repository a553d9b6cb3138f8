package dto

import (
	"main/model"
	"main/utils"
	"time"
)

type TaskResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Importance     int        `json:"importance"`
	Completed      bool       `json:"completed"`
	Group          string     `json:"group,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	DueDateDisplay string     `json:"due_date_display,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	TimeUntilDue   string     `json:"time_until_due,omitempty"`
}

// Convert model.Task to TaskResponse
func ToTaskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:          task.TaskID,
		Title:       task.Title,
		Description: task.Description,
		Importance:  task.Importance,
		Completed:   task.Completed,
		Group:       task.Group,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Handle nullable time fields
	if !task.DueDate.IsZero() {
		response.DueDate = &task.DueDate
		response.DueDateDisplay = utils.FormatISTDateTime(task.DueDate)
		if !task.Completed {
			if task.DueDate.Before(time.Now()) {
				response.TimeUntilDue = "Overdue"
			} else {
				response.TimeUntilDue = time.Until(task.DueDate).Round(time.Hour).String()
			}
		}
	}

	if !task.CompletedAt.IsZero() {
		response.CompletedAt = &task.CompletedAt
	}

	return response
}

// Convert slice of model.Task to slice of TaskResponse
func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}
