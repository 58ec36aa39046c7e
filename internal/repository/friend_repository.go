package repository

import (
	"context"
	"eventhub_backend/internal/model"

	"gorm.io/gorm"
)

type FriendRepository struct {
	DB *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{DB: db}
}

func (r *FriendRepository) Create(ctx context.Context, f *model.Friend) error {
	return translate(r.DB.WithContext(ctx).Create(f).Error)
}

func (r *FriendRepository) FindByID(ctx context.Context, id string) (*model.Friend, error) {
	var f model.Friend
	if err := r.DB.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// FindBetween returns the request between two users in either direction.
func (r *FriendRepository) FindBetween(ctx context.Context, a, b string) (*model.Friend, error) {
	var f model.Friend
	err := r.DB.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		First(&f).Error
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *FriendRepository) Update(ctx context.Context, f *model.Friend) error {
	return translate(r.DB.WithContext(ctx).Save(f).Error)
}

// FindForUser lists requests the user sent or received, optionally filtered by status.
func (r *FriendRepository) FindForUser(ctx context.Context, userID, status string) ([]model.Friend, error) {
	var friends []model.Friend
	query := r.DB.WithContext(ctx).Where("user_id = ? OR friend_id = ?", userID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&friends).Error
	return friends, err
}
