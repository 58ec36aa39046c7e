package repository

import (
	"context"
	"errors"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/util"

	"gorm.io/gorm"
)

type EventCategoryRepository struct {
	DB *gorm.DB
}

func NewEventCategoryRepository(db *gorm.DB) *EventCategoryRepository {
	return &EventCategoryRepository{DB: db}
}

func (r *EventCategoryRepository) WithTx(tx *gorm.DB) *EventCategoryRepository {
	return &EventCategoryRepository{DB: tx}
}

func (r *EventCategoryRepository) Create(ctx context.Context, c *model.EventCategory) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *EventCategoryRepository) FindByEventID(ctx context.Context, eventID string) (*model.EventCategory, error) {
	var c model.EventCategory
	if err := r.DB.WithContext(ctx).First(&c, "event_id = ?", eventID).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Upsert replaces the tag row of an event, creating it when absent.
func (r *EventCategoryRepository) Upsert(ctx context.Context, eventID string, tags []string) (*model.EventCategory, error) {
	existing, err := r.FindByEventID(ctx, eventID)
	if errors.Is(err, util.ErrNotFound) {
		c, err := model.NewEventCategory(eventID, tags)
		if err != nil {
			return nil, err
		}
		return c, r.Create(ctx, c)
	}
	if err != nil {
		return nil, err
	}

	if err := existing.SetTags(tags); err != nil {
		return nil, err
	}
	return existing, translate(r.DB.WithContext(ctx).Save(existing).Error)
}

// UncategorizedEvents lists events that have no event_category row yet.
func (r *EventCategoryRepository) UncategorizedEvents(ctx context.Context, limit int) ([]model.Event, error) {
	var events []model.Event
	err := r.DB.WithContext(ctx).
		Model(&model.Event{}).
		Joins("LEFT JOIN event_category ON event_category.event_id = events.id").
		Where("event_category.id IS NULL").
		Limit(limit).
		Find(&events).Error
	return events, err
}
