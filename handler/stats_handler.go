package handler

import (
	"context"
	"log"
	"strconv"
	"time"

	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// TaskSource abstracts where the dashboard pulls its tasks from, so the
// handler can be tested without a live collection.
type TaskSource interface {
	GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error)
}

type StatsHandler struct {
	tasks   TaskSource
	stats   *usecase.StatsService
	topDays int
}

func NewStatsHandler(tasks TaskSource, stats *usecase.StatsService, topDays int) *StatsHandler {
	return &StatsHandler{
		tasks:   tasks,
		stats:   stats,
		topDays: topDays,
	}
}

func (h *StatsHandler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if services.GlobalDashboardCache != nil {
		cached, err := services.GlobalDashboardCache.Get(ctx, userID.(string))
		if err != nil {
			log.Printf("Dashboard cache read failed for user %s: %v", userID, err)
		} else if cached != nil {
			utils.Success(c, gin.H{"dashboard": cached})
			return
		}
	}

	tasks, err := h.tasks.GetUserTasks(ctx, userID.(string))
	if err != nil {
		log.Printf("Error fetching tasks for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch tasks")
		return
	}

	topN := h.topDays
	if raw := c.Query("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.BadRequest(c, "Invalid top parameter, must be positive")
			return
		}
		topN = parsed
	}

	start := time.Now()
	metrics := h.stats.ComputeDashboard(tasks, time.Now(), topN)
	utils.DashboardComputeDuration.Observe(time.Since(start).Seconds())

	if services.GlobalDashboardCache != nil {
		if err := services.GlobalDashboardCache.Set(ctx, userID.(string), metrics); err != nil {
			log.Printf("Dashboard cache write failed for user %s: %v", userID, err)
		}
	}

	utils.Success(c, gin.H{"dashboard": metrics})
}
