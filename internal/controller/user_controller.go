package controller

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/service"
	"eventhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type userService interface {
	GetUsers(ctx context.Context, page, limit int) ([]model.User, int64, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]model.User, error)
	GetProfile(ctx context.Context, userID string) (*service.Profile, error)
	UpdateProfile(ctx context.Context, userID string, in service.ProfileInput) (*service.Profile, error)
}

type UserController struct {
	UserService userService
}

func NewUserController(userService userService) *UserController {
	return &UserController{UserService: userService}
}

// GetUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page, limit := pageParams(ctx)

	users, total, err := c.UserService.GetUsers(ctx.Request.Context(), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, pageResponse(users, total, page, limit))
}

// SearchRequest is a free-text search body.
// swagger:model SearchRequest
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

// SearchUsers godoc
// @Summary Search users by name or username
// @Tags users
// @Accept json
// @Produce json
// @Param body body SearchRequest true "Search text"
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 400 {object} util.Response
// @Router /users [post]
func (c *UserController) SearchUsers(ctx *gin.Context) {
	var req SearchRequest
	if !bindJSON(ctx, &req) {
		return
	}

	users, err := c.UserService.SearchUsers(ctx.Request.Context(), req.Query, req.Limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, users)
}

// GetProfile godoc
// @Summary Get a profile
// @Description Returns the profile for ?id=, or the caller's own profile when id is omitted.
// @Tags users
// @Produce json
// @Param id query string false "User ID"
// @Success 200 {object} util.Response{data=service.Profile}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID := ctx.Query("id")
	if userID == "" {
		claims, ok := currentUser(ctx)
		if !ok {
			return
		}
		userID = claims.UserID
	}

	profile, err := c.UserService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// EditProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProfileInput true "Fields to change"
// @Success 200 {object} util.Response{data=service.Profile}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response "Username taken"
// @Router /profile [put]
func (c *UserController) EditProfile(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.ProfileInput
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.UserService.UpdateProfile(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}
