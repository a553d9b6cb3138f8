package handler

import (
	"log"
	"time"

	"main/dto"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type NotificationsHandler struct {
	tasks  TaskSource
	window time.Duration
}

func NewNotificationsHandler(tasks TaskSource, window time.Duration) *NotificationsHandler {
	return &NotificationsHandler{tasks: tasks, window: window}
}

// GetDueSoon returns tasks approaching their due date. With Redis
// available, each task is only surfaced once per notification window;
// without it, every poll returns the full window.
func (h *NotificationsHandler) GetDueSoon(c *gin.Context) {
	ctx := c.Request.Context()
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	tasks, err := h.tasks.GetUserTasks(ctx, userID.(string))
	if err != nil {
		log.Printf("Error fetching tasks for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch tasks")
		return
	}

	if services.GlobalNotifier != nil {
		due, err := services.GlobalNotifier.DueSoon(ctx, userID.(string), tasks, time.Now())
		if err != nil {
			log.Printf("Notification dedupe failed for user %s: %v", userID, err)
			utils.InternalError(c, "Failed to check notifications")
			return
		}
		utils.Success(c, gin.H{"due_soon": dto.ToTaskResponses(due)})
		return
	}

	due := services.FindDueSoon(tasks, time.Now(), h.window)
	utils.Success(c, gin.H{"due_soon": dto.ToTaskResponses(due)})
}
