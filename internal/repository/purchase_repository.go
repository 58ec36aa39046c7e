package repository

import (
	"context"
	"eventhub_backend/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

func (r *PurchaseRepository) WithTx(tx *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: tx}
}

func (r *PurchaseRepository) Create(ctx context.Context, p *model.Purchase) error {
	return translate(r.DB.WithContext(ctx).Create(p).Error)
}

func (r *PurchaseRepository) FindByUser(ctx context.Context, userID string) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *PurchaseRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Purchase{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
