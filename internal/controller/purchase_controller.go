package controller

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type purchaseService interface {
	Buy(ctx context.Context, userID, eventID string) (*model.Purchase, error)
	ForUser(ctx context.Context, userID string) ([]model.Purchase, error)
}

type PurchaseController struct {
	PurchaseService purchaseService
}

func NewPurchaseController(purchaseService purchaseService) *PurchaseController {
	return &PurchaseController{PurchaseService: purchaseService}
}

// EventRefRequest points at an event by ID.
// swagger:model EventRefRequest
type EventRefRequest struct {
	EventID string `json:"event_id" binding:"required"`
}

// Buy godoc
// @Summary Buy a ticket
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRefRequest true "Event to attend"
// @Success 201 {object} util.Response{data=model.Purchase}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Sold out or inactive"
// @Router /purchase [post]
func (c *PurchaseController) Buy(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req EventRefRequest
	if !bindJSON(ctx, &req) {
		return
	}

	purchase, err := c.PurchaseService.Buy(ctx.Request.Context(), claims.UserID, req.EventID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, purchase)
}

// MyPurchases godoc
// @Summary List the caller's tickets
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Purchase}
// @Router /purchases [get]
func (c *PurchaseController) MyPurchases(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	purchases, err := c.PurchaseService.ForUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, purchases)
}
