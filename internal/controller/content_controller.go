package controller

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/service"
	"eventhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type contentService interface {
	CreateReview(ctx context.Context, userID string, in service.ReviewInput) (*model.Review, error)
	Reviews(ctx context.Context, eventID string, page, limit int) ([]model.Review, error)
	CreateStory(ctx context.Context, userID string, in service.StoryInput) (*model.Story, error)
	Stories(ctx context.Context, userID string) ([]model.Story, error)
}

// ContentController serves event reviews and stories.
type ContentController struct {
	ContentService contentService
}

func NewContentController(contentService contentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// CreateReview godoc
// @Summary Review an event
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ReviewInput true "Review"
// @Success 201 {object} util.Response{data=model.Review}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /reviews [post]
func (c *ContentController) CreateReview(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.ReviewInput
	if !bindJSON(ctx, &req) {
		return
	}

	review, err := c.ContentService.CreateReview(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, review)
}

// GetReviews godoc
// @Summary List an event's reviews
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param event_id query string true "Event"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=[]model.Review}
// @Failure 400 {object} util.Response
// @Router /reviews [get]
func (c *ContentController) GetReviews(ctx *gin.Context) {
	eventID := ctx.Query("event_id")
	if eventID == "" {
		util.BadRequest(ctx, "event_id is required")
		return
	}
	page, limit := pageParams(ctx)

	reviews, err := c.ContentService.Reviews(ctx.Request.Context(), eventID, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, reviews)
}

// CreateStory godoc
// @Summary Share a story
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.StoryInput true "Story"
// @Success 201 {object} util.Response{data=model.Story}
// @Failure 400 {object} util.Response
// @Router /stories [post]
func (c *ContentController) CreateStory(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.StoryInput
	if !bindJSON(ctx, &req) {
		return
	}

	story, err := c.ContentService.CreateStory(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, story)
}

// GetStories godoc
// @Summary Stories from the last day
// @Description Without user_id, returns recent stories from everyone.
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Author"
// @Success 200 {object} util.Response{data=[]model.Story}
// @Router /stories [get]
func (c *ContentController) GetStories(ctx *gin.Context) {
	stories, err := c.ContentService.Stories(ctx.Request.Context(), ctx.Query("user_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, stories)
}
