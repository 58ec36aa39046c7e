package repository

import (
	"context"
	"eventhub_backend/internal/model"

	"gorm.io/gorm"
)

type FollowRepository struct {
	DB *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{DB: db}
}

func (r *FollowRepository) Create(ctx context.Context, f *model.Follow) error {
	return translate(r.DB.WithContext(ctx).Create(f).Error)
}

func (r *FollowRepository) Exists(ctx context.Context, host, follower string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("host = ? AND follower = ?", host, follower).
		Count(&count).Error
	return count > 0, err
}

// Delete removes the follow; it reports util.ErrNotFound when there was none.
func (r *FollowRepository) Delete(ctx context.Context, host, follower string) error {
	res := r.DB.WithContext(ctx).
		Where("host = ? AND follower = ?", host, follower).
		Delete(&model.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, host string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).Where("host = ?", host).Count(&count).Error
	return count, err
}

func (r *FollowRepository) CountFollowing(ctx context.Context, follower string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).Where("follower = ?", follower).Count(&count).Error
	return count, err
}
