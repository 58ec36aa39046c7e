package controller

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/service"
	"eventhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type communityService interface {
	CreatePost(ctx context.Context, userID string, in service.PostInput) (*model.Post, error)
	Posts(ctx context.Context, userID string, page, limit int) ([]model.Post, int64, error)
	GetPost(ctx context.Context, id string) (*service.PostDetail, error)
	CreateComment(ctx context.Context, userID string, in service.CommentInput) (*model.Comment, error)
	Comments(ctx context.Context, eventID, postID string, page, limit int) ([]model.Comment, error)
	React(ctx context.Context, userID string, in service.ReactionInput) (*model.Reaction, error)
}

type CommunityController struct {
	CommunityService communityService
}

func NewCommunityController(communityService communityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

// CreatePost godoc
// @Summary Publish a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PostInput true "Post"
// @Success 201 {object} util.Response{data=model.Post}
// @Failure 400 {object} util.Response
// @Router /posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.PostInput
	if !bindJSON(ctx, &req) {
		return
	}

	post, err := c.CommunityService.CreatePost(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, post)
}

// GetPosts godoc
// @Summary List a user's posts, newest first
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Author, defaults to the caller"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /posts [get]
func (c *CommunityController) GetPosts(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	userID := ctx.DefaultQuery("user_id", claims.UserID)
	page, limit := pageParams(ctx)

	posts, total, err := c.CommunityService.Posts(ctx.Request.Context(), userID, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, pageResponse(posts, total, page, limit))
}

// GetPost godoc
// @Summary Get a post with reaction counts
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} util.Response{data=service.PostDetail}
// @Failure 404 {object} util.Response
// @Router /posts/{id} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	post, err := c.CommunityService.GetPost(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, post)
}

// CreateComment godoc
// @Summary Comment on an event or a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CommentInput true "Comment"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /comments [post]
func (c *CommunityController) CreateComment(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.CommentInput
	if !bindJSON(ctx, &req) {
		return
	}

	comment, err := c.CommunityService.CreateComment(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, comment)
}

// GetComments godoc
// @Summary List comments on an event or a post
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Event"
// @Param post query string false "Post"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Failure 400 {object} util.Response "Neither or both targets given"
// @Router /comments [get]
func (c *CommunityController) GetComments(ctx *gin.Context) {
	page, limit := pageParams(ctx)

	comments, err := c.CommunityService.Comments(ctx.Request.Context(), ctx.Query("event_id"), ctx.Query("post"), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, comments)
}

// React godoc
// @Summary React to a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ReactionInput true "Reaction"
// @Success 201 {object} util.Response{data=model.Reaction}
// @Failure 404 {object} util.Response
// @Router /reactions [post]
func (c *CommunityController) React(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.ReactionInput
	if !bindJSON(ctx, &req) {
		return
	}

	reaction, err := c.CommunityService.React(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, reaction)
}
