package repository

import (
	"context"
	"eventhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StoryRepository struct {
	DB *gorm.DB
}

func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{DB: db}
}

func (r *StoryRepository) Create(ctx context.Context, s *model.Story) error {
	return translate(r.DB.WithContext(ctx).Create(s).Error)
}

// FindRecent returns stories created after since, for the given users.
// An empty user list means every user.
func (r *StoryRepository) FindRecent(ctx context.Context, userIDs []string, since time.Time) ([]model.Story, error) {
	var stories []model.Story
	query := r.DB.WithContext(ctx).Where("created_at >= ?", since)
	if len(userIDs) > 0 {
		query = query.Where("user_id IN ?", userIDs)
	}
	err := query.Order("created_at DESC").Find(&stories).Error
	return stories, err
}
