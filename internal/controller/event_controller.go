package controller

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/service"
	"eventhub_backend/internal/util"
	"eventhub_backend/pkg/geo"
	"strconv"

	"github.com/gin-gonic/gin"
)

type eventService interface {
	GetEvent(ctx context.Context, id string) (*service.EventDetail, error)
	Trending(ctx context.Context, limit int) ([]model.Event, error)
	List(ctx context.Context, page, limit int) ([]model.Event, int64, error)
	Search(ctx context.Context, query string, limit int) ([]model.Event, error)
	HostEvents(ctx context.Context, hostID string) ([]model.Event, error)
	SearchByTags(ctx context.Context, tags []string, limit int) ([]model.Event, error)
	Closest(ctx context.Context, lat, lon, distance float64, unit geo.Unit, limit int) ([]model.EventWithDistance, error)
	Create(ctx context.Context, hostID string, in service.EventInput) (*service.EventDetail, error)
	Edit(ctx context.Context, hostID string, in service.EditEventInput) (*service.EventDetail, error)
}

type EventController struct {
	EventService eventService
}

func NewEventController(eventService eventService) *EventController {
	return &EventController{EventService: eventService}
}

// EventIDRequest identifies a single event.
// swagger:model EventIDRequest
type EventIDRequest struct {
	ID string `json:"id" binding:"required"`
}

// GetEvent godoc
// @Summary Get an event with its tags and review summary
// @Description Accepts the ID as a JSON body on POST /event or as ?id= on GET /host/Event.
// @Tags events
// @Accept json
// @Produce json
// @Param body body EventIDRequest false "Event ID (POST)"
// @Param id query string false "Event ID (GET)"
// @Success 200 {object} util.Response{data=service.EventDetail}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /event [post]
// @Router /host/Event [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id := ctx.Query("id")
	if id == "" {
		var req EventIDRequest
		if !bindJSON(ctx, &req) {
			return
		}
		id = req.ID
	}

	detail, err := c.EventService.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// TrendingEvents godoc
// @Summary Best-selling upcoming events
// @Tags events
// @Produce json
// @Param limit query int false "Number of events" default(10)
// @Success 200 {object} util.Response{data=[]model.Event}
// @Router /event [get]
func (c *EventController) TrendingEvents(ctx *gin.Context) {
	limit := service.TrendingLimit
	if v, err := strconv.Atoi(ctx.Query("limit")); err == nil && v > 0 {
		limit = min(v, util.MaxLimit)
	}

	events, err := c.EventService.Trending(ctx.Request.Context(), limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, events)
}

// GetAllEvents godoc
// @Summary List active events by date
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /events [get]
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	page, limit := pageParams(ctx)

	events, total, err := c.EventService.List(ctx.Request.Context(), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, pageResponse(events, total, page, limit))
}

// SearchEvent godoc
// @Summary Search events by name or location
// @Tags events
// @Accept json
// @Produce json
// @Param body body SearchRequest true "Search text"
// @Success 200 {object} util.Response{data=[]model.Event}
// @Failure 400 {object} util.Response
// @Router /events [post]
func (c *EventController) SearchEvent(ctx *gin.Context) {
	var req SearchRequest
	if !bindJSON(ctx, &req) {
		return
	}

	events, err := c.EventService.Search(ctx.Request.Context(), req.Query, req.Limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.EventInput true "Event details"
// @Success 201 {object} util.Response{data=service.EventDetail}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response "Not a host account"
// @Router /host/Event [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.EventInput
	if !bindJSON(ctx, &req) {
		return
	}

	detail, err := c.EventService.Create(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, detail)
}

// EditEvent godoc
// @Summary Update an event owned by the caller
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.EditEventInput true "Fields to change"
// @Success 200 {object} util.Response{data=service.EventDetail}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response "Not the event's host"
// @Failure 404 {object} util.Response
// @Router /host/Event [put]
func (c *EventController) EditEvent(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.EditEventInput
	if !bindJSON(ctx, &req) {
		return
	}

	detail, err := c.EventService.Edit(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// HostEventsRequest selects a host; the caller is used when HostID is empty.
// swagger:model HostEventsRequest
type HostEventsRequest struct {
	HostID string `json:"host_id"`
}

// GetHostEvents godoc
// @Summary List a host's events
// @Tags events
// @Accept json
// @Produce json
// @Param body body HostEventsRequest false "Host ID"
// @Success 200 {object} util.Response{data=[]model.Event}
// @Failure 400 {object} util.Response
// @Router /host/events [post]
func (c *EventController) GetHostEvents(ctx *gin.Context) {
	var req HostEventsRequest
	if ctx.Request.ContentLength != 0 {
		if !bindJSON(ctx, &req) {
			return
		}
	}

	hostID := req.HostID
	if hostID == "" {
		if claims := util.GetUserFromContext(ctx); claims != nil {
			hostID = claims.UserID
		}
	}
	if hostID == "" {
		util.BadRequest(ctx, "host_id is required")
		return
	}

	events, err := c.EventService.HostEvents(ctx.Request.Context(), hostID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, events)
}

// TagSearchRequest lists category tags to match any of.
// swagger:model TagSearchRequest
type TagSearchRequest struct {
	Tags  []string `json:"tags" binding:"required,min=1"`
	Limit int      `json:"limit"`
}

// SearchByTags godoc
// @Summary Find events in any of the given categories
// @Tags events
// @Accept json
// @Produce json
// @Param body body TagSearchRequest true "Category tags"
// @Success 200 {object} util.Response{data=[]model.Event}
// @Failure 400 {object} util.Response "Unknown tag"
// @Router /search [post]
func (c *EventController) SearchByTags(ctx *gin.Context) {
	var req TagSearchRequest
	if !bindJSON(ctx, &req) {
		return
	}

	events, err := c.EventService.SearchByTags(ctx.Request.Context(), req.Tags, req.Limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, events)
}

// ClosestEvents godoc
// @Summary Active events within a radius, nearest first
// @Tags events
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param distance query number true "Search radius"
// @Param unit query string false "km (default) or mi"
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {object} util.Response{data=[]model.EventWithDistance}
// @Failure 400 {object} util.Response
// @Router /location [get]
func (c *EventController) ClosestEvents(ctx *gin.Context) {
	var coords [3]float64
	for i, name := range []string{"lat", "lon", "distance"} {
		v, err := strconv.ParseFloat(ctx.Query(name), 64)
		if err != nil {
			util.BadRequest(ctx, name+" is required and must be a number")
			return
		}
		coords[i] = v
	}
	_, limit := pageParams(ctx)

	events, err := c.EventService.Closest(ctx.Request.Context(), coords[0], coords[1], coords[2], geo.ParseUnit(ctx.Query("unit")), limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, events)
}
