package repository

import (
	"context"
	"errors"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrGroupExists = errors.New("group already exists")

type GroupsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for groups
func GetGroupsRepo(client *mongo.Client) *GroupsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("GROUPS_COLLECTION")
	return &GroupsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Adds a new group label for a user; names are unique per user
func (r *GroupsRepo) CreateGroup(ctx context.Context, group *model.Group) error {
	timer := utils.TrackDBOperation("insert", "groups")
	defer timer.ObserveDuration()

	if group.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id": group.UserID,
		"name":    group.Name,
	})
	if err != nil {
		utils.TrackError("database", "group_lookup_failed")
		return err
	}
	if count > 0 {
		return ErrGroupExists
	}

	if _, err := r.MongoCollection.InsertOne(ctx, group); err != nil {
		utils.TrackError("database", "group_creation_failed")
		return err
	}
	return nil
}

// Retrieves all groups for a user
func (r *GroupsRepo) GetUserGroups(ctx context.Context, userID string) ([]*model.Group, error) {
	timer := utils.TrackDBOperation("find", "groups")
	defer timer.ObserveDuration()

	var groups []*model.Group
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "group_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &groups); err != nil {
		utils.TrackError("database", "group_decode_failed")
		return nil, err
	}
	return groups, nil
}

// Removes a group and reports its name so callers can detach tasks
func (r *GroupsRepo) DeleteGroup(ctx context.Context, groupID string, userID string) (*model.Group, error) {
	timer := utils.TrackDBOperation("delete", "groups")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     groupID,
		"user_id": userID,
	}

	var group model.Group
	if err := r.MongoCollection.FindOneAndDelete(ctx, filter).Decode(&group); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "group_not_found")
			return nil, errors.New("group not found")
		}
		utils.TrackError("database", "group_deletion_failed")
		return nil, err
	}
	return &group, nil
}
