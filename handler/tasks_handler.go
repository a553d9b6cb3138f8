package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"main/dto"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	service *usecase.TaskService
}

func NewTaskHandler(service *usecase.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// invalidateDashboard drops cached metrics after any task mutation so
// the next dashboard request recomputes from fresh data.
func invalidateDashboard(ctx context.Context, userID string) {
	if services.GlobalDashboardCache != nil {
		services.GlobalDashboardCache.Invalidate(ctx, userID)
	}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	// Get authenticated user ID
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		Importance  int       `json:"importance" binding:"importance"`
		DueDate     time.Time `json:"due_date"`
		Group       string    `json:"group"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task := &model.Task{
		UserID:      userID.(string),
		Title:       req.Title,
		Description: req.Description,
		Importance:  req.Importance,
		DueDate:     req.DueDate,
		Group:       req.Group,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.service.CreateTask(c.Request.Context(), task); err != nil {
		// Handle validation errors
		if strings.Contains(err.Error(), "title is required") ||
			strings.Contains(err.Error(), "cannot exceed 200 characters") ||
			strings.Contains(err.Error(), "importance must be between") {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	invalidateDashboard(c.Request.Context(), userID.(string))

	response := dto.ToTaskResponse(task)
	utils.Created(c, response)
}

func (h *TaskHandler) GetUserTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetUserTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := dto.ToTaskResponses(tasks)
	utils.Success(c, responses)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	var updates model.Task
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updatedTask, err := h.service.UpdateTask(c.Request.Context(), taskID, userID.(string), &updates)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	invalidateDashboard(c.Request.Context(), userID.(string))

	response := dto.ToTaskResponse(updatedTask)
	utils.Success(c, response)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), taskID, userID.(string)); err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	invalidateDashboard(c.Request.Context(), userID.(string))

	utils.Success(c, gin.H{"message": "Task deleted successfully"})
}

func (h *TaskHandler) ToggleTaskComplete(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Missing task ID")
		return
	}

	updatedTask, err := h.service.ToggleTaskComplete(c.Request.Context(), taskID, userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	invalidateDashboard(c.Request.Context(), userID.(string))

	response := dto.ToTaskResponse(updatedTask)
	utils.Success(c, response)
}

func (h *TaskHandler) SearchTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	searchText := c.Query("q")
	tasks, err := h.service.SearchTasks(c.Request.Context(), userID.(string), searchText)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := dto.ToTaskResponses(tasks)
	utils.Success(c, responses)
}

func (h *TaskHandler) GetTasksByGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	group := c.Query("group")
	if group == "" {
		utils.BadRequest(c, "Missing group name")
		return
	}

	tasks, err := h.service.GetTasksByGroup(c.Request.Context(), userID.(string), group)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := dto.ToTaskResponses(tasks)
	utils.Success(c, responses)
}

func (h *TaskHandler) GetImportantTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	thresholdStr := c.DefaultQuery("threshold", "8")
	threshold, err := strconv.Atoi(thresholdStr)
	if err != nil || threshold < model.ImportanceMin || threshold > model.ImportanceMax {
		utils.BadRequest(c, "Invalid threshold, must be between 1 and 10")
		return
	}

	tasks, err := h.service.GetImportantTasks(c.Request.Context(), userID.(string), threshold)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := dto.ToTaskResponses(tasks)
	utils.Success(c, responses)
}

func (h *TaskHandler) GetUpcomingTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	daysStr := c.DefaultQuery("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		utils.BadRequest(c, "Invalid days parameter, must be positive")
		return
	}

	tasks, err := h.service.GetUpcomingTasks(c.Request.Context(), userID.(string), days)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := dto.ToTaskResponses(tasks)
	utils.Success(c, responses)
}

func (h *TaskHandler) GetOverdueTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetOverdueTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := dto.ToTaskResponses(tasks)
	utils.Success(c, responses)
}

func (h *TaskHandler) GetCompletedTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetCompletedTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := dto.ToTaskResponses(tasks)
	utils.Success(c, responses)
}

func (h *TaskHandler) GetPendingTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetPendingTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := dto.ToTaskResponses(tasks)
	utils.Success(c, responses)
}

func (h *TaskHandler) CountUserTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	count, err := h.service.CountUserTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"count": count})
}
