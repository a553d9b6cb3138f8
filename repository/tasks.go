package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TasksRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for tasks
func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("TASKS_COLLECTION")
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Add a new task (following the model) into the database
func (r *TasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", "tasks")
	defer timer.ObserveDuration()

	if task.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, task)
	if err != nil {
		utils.TrackError("database", "task_creation_failed")
		return err
	}

	return nil
}

// Retrieves all tasks based on the User ID
func (r *TasksRepo) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var tasks []*model.Task
	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		utils.TrackError("database", "task_decode_failed")
		return nil, err
	}
	return tasks, nil
}

// Fetches a single task scoped to its owner
func (r *TasksRepo) GetTask(ctx context.Context, taskID string, userID string) (*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, bson.M{
		"_id":     taskID,
		"user_id": userID,
	}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "task_not_found")
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// All encompassing update for a specific task
func (r *TasksRepo) UpdateTask(ctx context.Context, taskID string, userID string, updates *model.Task) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"title":       updates.Title,
			"description": updates.Description,
			"importance":  updates.Importance,
			"due_date":    updates.DueDate,
			"group":       updates.Group,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return errors.New("task not found")
	}

	return nil
}

// Removes a specific task from database
func (r *TasksRepo) DeleteTask(ctx context.Context, taskID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "task_deletion_failed")
		return err
	}

	if result.DeletedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return errors.New("task not found")
	}

	return nil
}

// DeleteUserTasks removes every task belonging to a user, used during
// account deletion.
func (r *TasksRepo) DeleteUserTasks(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "task_deletion_failed")
		return err
	}

	return nil
}

// Toggles the completed status of a task. Completing a task stamps
// completed_at; re-opening clears it so stale completions never feed
// the dashboard.
func (r *TasksRepo) ToggleTaskComplete(ctx context.Context, taskID string, userID string) (*model.Task, error) {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		utils.TrackError("database", "task_not_found")
		return nil, err
	}

	task.Completed = !task.Completed
	task.UpdatedAt = time.Now()
	if task.Completed {
		task.CompletedAt = task.UpdatedAt
	} else {
		task.CompletedAt = time.Time{}
	}

	update := bson.M{
		"$set": bson.M{
			"completed":    task.Completed,
			"completed_at": task.CompletedAt,
			"updated_at":   task.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return nil, err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return nil, errors.New("task not found")
	}

	if task.Completed {
		utils.TrackTaskCompletion(userID)
	}

	return &task, nil
}

// Counts the non-sorted number of tasks for a user for display in the UI
func (r *TasksRepo) CountAllTasks(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Counts the number of pending tasks for a user
func (r *TasksRepo) PendingCount(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "pending_tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "completed": false})
	if err != nil {
		utils.TrackError("database", "pending_task_count_failed")
		return 0, err
	}
	return int(count), nil
}

// Counts the number of completed tasks for a user
func (r *TasksRepo) CompletedCount(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "completed_tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "completed": true})
	if err != nil {
		utils.TrackError("database", "completed_task_count_failed")
		return 0, err
	}
	return int(count), nil
}

// Gets all tasks belonging to a group label
func (r *TasksRepo) GetTasksByGroup(ctx context.Context, userID string, group string) ([]*model.Task, error) {
	filter := bson.M{
		"user_id": userID,
		"group":   group,
	}

	var tasks []*model.Task
	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Clears the group label from every task referencing it; used when a
// group is deleted
func (r *TasksRepo) ClearGroup(ctx context.Context, userID string, group string) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "group": group},
		bson.M{"$set": bson.M{"group": "", "updated_at": time.Now()}})
	if err != nil {
		utils.TrackError("database", "group_clear_failed")
	}
	return err
}
