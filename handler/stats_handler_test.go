package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"main/model"
	"main/usecase"

	"github.com/gin-gonic/gin"
)

type stubTaskSource struct {
	tasks []*model.Task
	err   error
}

func (s *stubTaskSource) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	return s.tasks, s.err
}

func setupDashboardRouter(source TaskSource, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if authed {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", "test-user")
			c.Next()
		})
	}

	h := NewStatsHandler(source, usecase.NewStatsService(time.UTC), 5)
	router.GET("/dashboard", h.GetDashboard)
	return router
}

func TestGetDashboard(t *testing.T) {
	now := time.Now().UTC()

	tasks := []*model.Task{
		{
			TaskID:      "t1",
			UserID:      "test-user",
			Title:       "done today",
			Importance:  7,
			Completed:   true,
			CompletedAt: now.Add(-time.Hour),
		},
		{
			TaskID:     "t2",
			UserID:     "test-user",
			Title:      "still pending",
			Importance: 4,
			DueDate:    now.AddDate(0, 0, 3),
		},
	}

	router := setupDashboardRouter(&stubTaskSource{tasks: tasks}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Dashboard model.DashboardMetrics `json:"dashboard"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	summary := resp.Data.Dashboard.Summary
	if summary.TotalTasks != 2 {
		t.Errorf("expected 2 total tasks, got %d", summary.TotalTasks)
	}
	if summary.CompletedTasks != 1 {
		t.Errorf("expected 1 completed task, got %d", summary.CompletedTasks)
	}
	if summary.PendingTasks != 1 {
		t.Errorf("expected 1 pending task, got %d", summary.PendingTasks)
	}
	if len(resp.Data.Dashboard.WeeklySeries) != 7 {
		t.Errorf("expected 7 weekly points, got %d", len(resp.Data.Dashboard.WeeklySeries))
	}
}

func TestGetDashboardUnauthorized(t *testing.T) {
	router := setupDashboardRouter(&stubTaskSource{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestGetDashboardSourceError(t *testing.T) {
	router := setupDashboardRouter(&stubTaskSource{err: context.DeadlineExceeded}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestGetDashboardInvalidTopParam(t *testing.T) {
	router := setupDashboardRouter(&stubTaskSource{}, true)

	for _, raw := range []string{"abc", "0", "-3"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard?top="+raw, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("top=%q: expected status 400, got %d", raw, w.Code)
		}
	}
}
