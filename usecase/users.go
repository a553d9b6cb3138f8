package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

type UserService struct {
	UsersRepo *repository.UserRepo
}

// CreateUser hashes the password and stores a new account. The
// plain-text password never leaves this function.
func (svc *UserService) CreateUser(ctx context.Context, user *model.User) error {
	existing, err := svc.UsersRepo.FindUserByUsername(user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("username already exists")
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return err
	}

	user.UserID = utils.GenerateUserID()
	user.Password = hashed
	user.CreatedAt = time.Now()

	_, err = svc.UsersRepo.AddUser(ctx, user)
	return err
}

func (svc *UserService) FindUserByUsername(username string) (*model.User, error) {
	return svc.UsersRepo.FindUserByUsername(username)
}

func (svc *UserService) FindUser(userID string) (*model.User, error) {
	return svc.UsersRepo.FindUser(userID)
}
