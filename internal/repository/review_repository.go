package repository

import (
	"context"
	"eventhub_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// ReviewSummary aggregates the ratings of one event.
type ReviewSummary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return translate(r.DB.WithContext(ctx).Create(review).Error)
}

func (r *ReviewRepository) FindByEvent(ctx context.Context, eventID string, offset, limit int) ([]model.Review, error) {
	var reviews []model.Review
	err := r.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) Summary(ctx context.Context, eventID string) (ReviewSummary, error) {
	var s ReviewSummary
	err := r.DB.WithContext(ctx).Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("event_id = ?", eventID).
		Scan(&s).Error
	return s, err
}
