package handler

import (
	"errors"

	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	service *usecase.GroupService
}

func NewGroupHandler(service *usecase.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	group, err := h.service.CreateGroup(c.Request.Context(), userID.(string), req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrGroupExists) {
			utils.Conflict(c, "Group already exists")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, group)
}

func (h *GroupHandler) GetUserGroups(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	groups, err := h.service.GetUserGroups(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, groups)
}

func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	groupID := c.Param("id")
	if groupID == "" {
		utils.BadRequest(c, "Missing group ID")
		return
	}

	if err := h.service.DeleteGroup(c.Request.Context(), groupID, userID.(string)); err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Group deleted successfully"})
}
