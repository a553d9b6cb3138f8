package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"main/model"
	"main/utils"

	"github.com/redis/go-redis/v9"
)

// GlobalNotifier is nil when Redis is not configured; the notifications
// endpoint then returns due-soon tasks without cross-request dedupe.
var GlobalNotifier *Notifier

// Notifier finds tasks approaching their due date and remembers which
// tasks a user has already been notified about so repeated polls do not
// surface the same task twice.
type Notifier struct {
	client *redis.Client
	window time.Duration
}

func NewNotifier(redisURL string, window time.Duration) (*Notifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &Notifier{client: client, window: window}, nil
}

// FindDueSoon returns incomplete tasks whose due date falls within the
// notification window starting at now. Overdue tasks are excluded; they
// belong to the dashboard's overdue count, not to reminders. The result
// is ordered soonest first.
func FindDueSoon(tasks []*model.Task, now time.Time, window time.Duration) []*model.Task {
	deadline := now.Add(window)

	var due []*model.Task
	for _, task := range tasks {
		if task.Completed || task.DueDate.IsZero() {
			continue
		}
		if task.DueDate.Before(now) || task.DueDate.After(deadline) {
			continue
		}
		due = append(due, task)
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].DueDate.Before(due[j].DueDate)
	})
	return due
}

func (n *Notifier) key(userID string) string {
	return fmt.Sprintf("notified:%s", userID)
}

// DueSoon returns tasks in the window that the user has not yet been
// notified about, and marks them as notified. The dedupe entry lives as
// long as the window itself, so a postponed task resurfaces once it is
// inside a fresh window.
func (n *Notifier) DueSoon(ctx context.Context, userID string, tasks []*model.Task, now time.Time) ([]*model.Task, error) {
	candidates := FindDueSoon(tasks, now, n.window)
	if len(candidates) == 0 {
		return nil, nil
	}

	key := n.key(userID)
	var fresh []*model.Task
	for _, task := range candidates {
		added, err := n.client.SAdd(ctx, key, task.TaskID).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to record notification: %v", err)
		}
		if added > 0 {
			fresh = append(fresh, task)
			utils.NotificationsQueued.WithLabelValues("queued").Inc()
		} else {
			utils.NotificationsQueued.WithLabelValues("deduped").Inc()
		}
	}

	if err := n.client.Expire(ctx, key, n.window).Err(); err != nil {
		return nil, fmt.Errorf("failed to set notification expiry: %v", err)
	}
	return fresh, nil
}

// ClearNotified forgets the notified set, used when a user deletes their
// account.
func (n *Notifier) ClearNotified(ctx context.Context, userID string) error {
	err := n.client.Del(ctx, n.key(userID)).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}

// Close closes the Redis connection
func (n *Notifier) Close() error {
	return n.client.Close()
}
