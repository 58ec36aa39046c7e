package service

import (
	"context"
	"errors"
	"eventhub_backend/internal/config"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/util"
	"eventhub_backend/pkg/geo"
	"eventhub_backend/pkg/logger"
	"eventhub_backend/pkg/monitoring"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const TrendingLimit = 10

// EventInput is the body of POST /host/Event.
// swagger:model EventInput
type EventInput struct {
	Name      string   `json:"name" binding:"required"`
	Price     int      `json:"price" binding:"gte=0"`
	Location  string   `json:"location"`
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
	Date      string   `json:"date"`
	Time      *string  `json:"time"`
	Discount  *int     `json:"discount"`
	EventPic  string   `json:"event_pic"`
	Tickets   *int     `json:"tickets"`
	Tags      []string `json:"tags"`
}

// EditEventInput is the body of PUT /host/Event. Nil fields are left unchanged.
// swagger:model EditEventInput
type EditEventInput struct {
	ID        string    `json:"id" binding:"required"`
	Name      *string   `json:"name"`
	Price     *int      `json:"price"`
	Location  *string   `json:"location"`
	Longitude *float64  `json:"longitude"`
	Latitude  *float64  `json:"latitude"`
	Date      *string   `json:"date"`
	Time      *string   `json:"time"`
	Discount  *int      `json:"discount"`
	IsActive  *bool     `json:"is_active"`
	EventPic  *string   `json:"event_pic"`
	Tickets   *int      `json:"tickets"`
	Tags      *[]string `json:"tags"`
}

// EventDetail is an event with its tags and review summary.
type EventDetail struct {
	model.Event
	Tags      []string                 `json:"tags"`
	Reviews   repository.ReviewSummary `json:"reviews"`
	Remaining *int                     `json:"remaining,omitempty"`
}

type EventService struct {
	DB           *gorm.DB
	EventRepo    *repository.EventRepository
	CategoryRepo *repository.EventCategoryRepository
	ReviewRepo   *repository.ReviewRepository
	Cache        *repository.CacheRepository
	Cfg          *config.Config
}

func NewEventService(
	db *gorm.DB,
	eventRepo *repository.EventRepository,
	categoryRepo *repository.EventCategoryRepository,
	reviewRepo *repository.ReviewRepository,
	cache *repository.CacheRepository,
	cfg *config.Config,
) *EventService {
	return &EventService{
		DB:           db,
		EventRepo:    eventRepo,
		CategoryRepo: categoryRepo,
		ReviewRepo:   reviewRepo,
		Cache:        cache,
		Cfg:          cfg,
	}
}

func (s *EventService) detail(ctx context.Context, event *model.Event) (*EventDetail, error) {
	d := &EventDetail{Event: *event, Tags: []string{}}

	category, err := s.CategoryRepo.FindByEventID(ctx, event.ID)
	switch {
	case err == nil:
		if tags := category.Tags(); tags != nil {
			d.Tags = tags
		}
	case !errors.Is(err, util.ErrNotFound):
		return nil, err
	}

	if d.Reviews, err = s.ReviewRepo.Summary(ctx, event.ID); err != nil {
		return nil, err
	}

	if event.Tickets != nil {
		remaining := event.Remaining()
		d.Remaining = &remaining
	}
	return d, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*EventDetail, error) {
	event, err := s.EventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, event)
}

// Trending returns the best-selling active upcoming events. Results are
// cached; cache failures fall through to the database.
func (s *EventService) Trending(ctx context.Context, limit int) ([]model.Event, error) {
	key := repository.TrendingKey(limit)

	var events []model.Event
	hit, err := s.Cache.GetJSON(ctx, key, &events)
	if err != nil {
		logger.Log.Warn("Trending cache read failed", zap.Error(err))
	}
	if hit {
		monitoring.CacheLookups.WithLabelValues("trending", "hit").Inc()
		return events, nil
	}
	monitoring.CacheLookups.WithLabelValues("trending", "miss").Inc()

	events, err = s.EventRepo.Trending(ctx, time.Now(), limit)
	if err != nil {
		return nil, err
	}

	if err := s.Cache.SetJSON(ctx, key, events, s.Cfg.Cache.TrendingTTL()); err != nil {
		logger.Log.Warn("Trending cache write failed", zap.Error(err))
	}
	return events, nil
}

func (s *EventService) List(ctx context.Context, page, limit int) ([]model.Event, int64, error) {
	return s.EventRepo.List(ctx, util.Offset(page, limit), limit)
}

func (s *EventService) Search(ctx context.Context, query string, limit int) ([]model.Event, error) {
	if strings.TrimSpace(query) == "" {
		return nil, model.NewValidationError("query", "is required")
	}
	return s.EventRepo.Search(ctx, query, util.ClampLimit(limit))
}

func (s *EventService) HostEvents(ctx context.Context, hostID string) ([]model.Event, error) {
	return s.EventRepo.FindByHost(ctx, hostID)
}

func (s *EventService) SearchByTags(ctx context.Context, tags []string, limit int) ([]model.Event, error) {
	return s.EventRepo.FindByTags(ctx, tags, util.ClampLimit(limit))
}

// Closest returns events within distance of (lat, lon), nearest first.
func (s *EventService) Closest(ctx context.Context, lat, lon, distance float64, unit geo.Unit, limit int) ([]model.EventWithDistance, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return nil, model.NewValidationError("lat", "coordinates are out of range")
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance <= 0 {
		return nil, model.NewValidationError("distance", "must be a finite number greater than 0")
	}
	return s.EventRepo.Nearby(ctx, lat, lon, distance, unit, util.ClampLimit(limit))
}

// Create stores the event and its category row in one transaction.
func (s *EventService) Create(ctx context.Context, hostID string, in EventInput) (*EventDetail, error) {
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Name:      in.Name,
		Price:     in.Price,
		Location:  in.Location,
		Longitude: in.Longitude,
		Latitude:  in.Latitude,
		Date:      date,
		Time:      in.Time,
		HostID:    hostID,
		Discount:  in.Discount,
		IsActive:  true,
		EventPic:  in.EventPic,
		Tickets:   in.Tickets,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.EventRepo.WithTx(tx).Create(ctx, event); err != nil {
			return err
		}
		if len(in.Tags) == 0 {
			return nil
		}
		category, err := model.NewEventCategory(event.ID, in.Tags)
		if err != nil {
			return err
		}
		return s.CategoryRepo.WithTx(tx).Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTrending(ctx)
	logger.Log.Info("Event created", zap.String("event_id", event.ID), zap.String("host_id", hostID))

	return s.GetEvent(ctx, event.ID)
}

// Edit applies the non-nil fields of in. Only the owning host may edit. The
// row stays locked until commit so concurrent purchases wait for the edit.
func (s *EventService) Edit(ctx context.Context, hostID string, in EditEventInput) (*EventDetail, error) {
	var event *model.Event
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		event, err = s.EventRepo.WithTx(tx).FindByIDForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}
		if event.HostID != hostID {
			return util.ErrPermissionDenied
		}
		if err := applyEventEdit(event, in); err != nil {
			return err
		}

		if err := s.EventRepo.WithTx(tx).Update(ctx, event); err != nil {
			return err
		}
		if in.Tags == nil {
			return nil
		}
		_, err = s.CategoryRepo.WithTx(tx).Upsert(ctx, event.ID, *in.Tags)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTrending(ctx)
	return s.detail(ctx, event)
}

func applyEventEdit(event *model.Event, in EditEventInput) error {
	if in.Name != nil {
		event.Name = *in.Name
	}
	if in.Price != nil {
		event.Price = *in.Price
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Longitude != nil {
		event.Longitude = in.Longitude
	}
	if in.Latitude != nil {
		event.Latitude = in.Latitude
	}
	if in.Date != nil {
		date, err := parseDate("date", *in.Date)
		if err != nil {
			return err
		}
		event.Date = date
	}
	if in.Time != nil {
		event.Time = in.Time
	}
	if in.Discount != nil {
		event.Discount = in.Discount
	}
	if in.IsActive != nil {
		event.IsActive = *in.IsActive
	}
	if in.EventPic != nil {
		event.EventPic = *in.EventPic
	}
	if in.Tickets != nil {
		event.Tickets = in.Tickets
	}
	return nil
}

func (s *EventService) invalidateTrending(ctx context.Context) {
	if err := s.Cache.InvalidateTrending(ctx); err != nil {
		logger.Log.Warn("Trending cache invalidation failed", zap.Error(err))
	}
}
