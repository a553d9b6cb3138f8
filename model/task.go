package model

import "time"

const (
	// Importance bounds for a task. The dashboard buckets pending
	// tasks over this exact range.
	ImportanceMin = 1
	ImportanceMax = 10
)

type Task struct {
	TaskID      string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Title       string    `bson:"title" json:"title" binding:"required"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Importance  int       `bson:"importance" json:"importance" binding:"importance"`
	Completed   bool      `bson:"completed" json:"completed"`
	DueDate     time.Time `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	CompletedAt time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	Group       string    `bson:"group,omitempty" json:"group,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// HasCompletion reports whether the task counts as a completion for
// date-based statistics. Re-opened tasks keep Completed=false, so a
// stale completed_at never leaks into the dashboard.
func (t *Task) HasCompletion() bool {
	return t.Completed && !t.CompletedAt.IsZero()
}
