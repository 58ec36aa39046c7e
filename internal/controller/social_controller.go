package controller

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type socialService interface {
	RequestFriend(ctx context.Context, userID, friendID string) (*model.Friend, error)
	RespondFriend(ctx context.Context, userID, requestID string, accept bool) (*model.Friend, error)
	Friends(ctx context.Context, userID, status string) ([]model.Friend, error)
	Follow(ctx context.Context, followerID, hostID string) (*model.Follow, error)
	Unfollow(ctx context.Context, followerID, hostID string) error
	AddFavourite(ctx context.Context, userID, eventID string) (*model.Favourite, error)
	RemoveFavourite(ctx context.Context, userID, eventID string) error
	Favourites(ctx context.Context, userID string) ([]model.Event, error)
}

// SocialController serves friends, follows and favourites.
type SocialController struct {
	SocialService socialService
}

func NewSocialController(socialService socialService) *SocialController {
	return &SocialController{SocialService: socialService}
}

// FriendRequest names the user to befriend.
// swagger:model FriendRequest
type FriendRequest struct {
	FriendID string `json:"friend_id" binding:"required"`
}

// RequestFriend godoc
// @Summary Send a friend request
// @Tags social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FriendRequest true "Target user"
// @Success 201 {object} util.Response{data=model.Friend}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Request already exists"
// @Router /friends [post]
func (c *SocialController) RequestFriend(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req FriendRequest
	if !bindJSON(ctx, &req) {
		return
	}

	friend, err := c.SocialService.RequestFriend(ctx.Request.Context(), claims.UserID, req.FriendID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, friend)
}

// FriendResponse accepts or declines a pending request.
// swagger:model FriendResponse
type FriendResponse struct {
	ID     string `json:"id" binding:"required"`
	Accept bool   `json:"accept"`
}

// RespondFriend godoc
// @Summary Accept or decline a friend request
// @Tags social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FriendResponse true "Decision"
// @Success 200 {object} util.Response{data=model.Friend}
// @Failure 403 {object} util.Response "Not the addressee"
// @Failure 404 {object} util.Response
// @Router /friends [put]
func (c *SocialController) RespondFriend(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req FriendResponse
	if !bindJSON(ctx, &req) {
		return
	}

	friend, err := c.SocialService.RespondFriend(ctx.Request.Context(), claims.UserID, req.ID, req.Accept)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, friend)
}

// Friends godoc
// @Summary List the caller's friendships
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, accepted or declined"
// @Success 200 {object} util.Response{data=[]model.Friend}
// @Router /friends [get]
func (c *SocialController) Friends(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	friends, err := c.SocialService.Friends(ctx.Request.Context(), claims.UserID, ctx.Query("status"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, friends)
}

// FollowRequest names the host to follow.
// swagger:model FollowRequest
type FollowRequest struct {
	Host string `json:"host" form:"host" binding:"required"`
}

// Follow godoc
// @Summary Follow a host
// @Tags social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FollowRequest true "Host"
// @Success 201 {object} util.Response{data=model.Follow}
// @Failure 400 {object} util.Response "Not a host"
// @Failure 409 {object} util.Response "Already following"
// @Router /follow [post]
func (c *SocialController) Follow(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req FollowRequest
	if !bindJSON(ctx, &req) {
		return
	}

	follow, err := c.SocialService.Follow(ctx.Request.Context(), claims.UserID, req.Host)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, follow)
}

// Unfollow godoc
// @Summary Stop following a host
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param host query string true "Host"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /follow [delete]
func (c *SocialController) Unfollow(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req FollowRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SocialService.Unfollow(ctx.Request.Context(), claims.UserID, req.Host); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"unfollowed": true})
}

// AddFavourite godoc
// @Summary Save an event to favourites
// @Tags social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRefRequest true "Event"
// @Success 201 {object} util.Response{data=model.Favourite}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Already saved"
// @Router /favourites [post]
func (c *SocialController) AddFavourite(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req EventRefRequest
	if !bindJSON(ctx, &req) {
		return
	}

	fav, err := c.SocialService.AddFavourite(ctx.Request.Context(), claims.UserID, req.EventID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, fav)
}

// RemoveFavourite godoc
// @Summary Remove an event from favourites
// @Tags social
// @Produce json
// @Security BearerAuth
// @Param event_id query string true "Event"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /favourites [delete]
func (c *SocialController) RemoveFavourite(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID := ctx.Query("event_id")
	if eventID == "" {
		util.BadRequest(ctx, "event_id is required")
		return
	}

	if err := c.SocialService.RemoveFavourite(ctx.Request.Context(), claims.UserID, eventID); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"removed": true})
}

// Favourites godoc
// @Summary List the caller's favourite events
// @Tags social
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Event}
// @Router /favourites [get]
func (c *SocialController) Favourites(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	events, err := c.SocialService.Favourites(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, events)
}
