package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
)

const maxGroupNameLength = 40

type GroupService struct {
	repo     *repository.GroupsRepo
	taskRepo *repository.TasksRepo
}

func NewGroupService(repo *repository.GroupsRepo, taskRepo *repository.TasksRepo) *GroupService {
	return &GroupService{repo: repo, taskRepo: taskRepo}
}

func (svc *GroupService) CreateGroup(ctx context.Context, userID string, name string) (*model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("group name is required")
	}
	if len(name) > maxGroupNameLength {
		return nil, errors.New("group name too long")
	}

	group := &model.Group{
		GroupID:   uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	if err := svc.repo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (svc *GroupService) GetUserGroups(ctx context.Context, userID string) ([]*model.Group, error) {
	return svc.repo.GetUserGroups(ctx, userID)
}

// DeleteGroup removes the group and detaches its label from every
// task that carried it.
func (svc *GroupService) DeleteGroup(ctx context.Context, groupID string, userID string) error {
	group, err := svc.repo.DeleteGroup(ctx, groupID, userID)
	if err != nil {
		return err
	}
	return svc.taskRepo.ClearGroup(ctx, userID, group.Name)
}
