package repository

import (
	"context"
	"eventhub_backend/internal/model"

	"gorm.io/gorm"
)

type FavouriteRepository struct {
	DB *gorm.DB
}

func NewFavouriteRepository(db *gorm.DB) *FavouriteRepository {
	return &FavouriteRepository{DB: db}
}

func (r *FavouriteRepository) Create(ctx context.Context, f *model.Favourite) error {
	return translate(r.DB.WithContext(ctx).Create(f).Error)
}

func (r *FavouriteRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Favourite{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavouriteRepository) Delete(ctx context.Context, userID, eventID string) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&model.Favourite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

// FavouriteEvents returns the favourited events of a user. Favourites whose
// event no longer exists are skipped.
func (r *FavouriteRepository) FavouriteEvents(ctx context.Context, userID string) ([]model.Event, error) {
	var events []model.Event
	err := r.DB.WithContext(ctx).
		Joins("JOIN favourites ON favourites.event_id = events.id").
		Where("favourites.user_id = ?", userID).
		Order("favourites.created_at DESC").
		Find(&events).Error
	return events, err
}
