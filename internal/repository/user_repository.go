package repository

import (
	"context"
	"eventhub_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByLogin looks a user up by email or username.
func (r *UserRepository) FindByLogin(ctx context.Context, identifier string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	var user model.User
	err := r.DB.WithContext(ctx).
		Where("email = ? OR username = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", strings.TrimSpace(username)).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// Update saves the full row, so model validation runs again.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return translate(r.DB.WithContext(ctx).Save(user).Error)
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, email string) error {
	res := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		UpdateColumn("email_verified", true)
	if res.Error != nil {
		return res.Error
	}
	// the driver counts changed rows, so an already verified user reports 0
	if res.RowsAffected == 0 {
		exists, err := r.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if !exists {
			return translate(gorm.ErrRecordNotFound)
		}
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.User{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) Search(ctx context.Context, term string, limit int) ([]model.User, error) {
	var users []model.User
	like := containsPattern(term)
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Where("username LIKE ? OR name LIKE ? OR email LIKE ?", like, like, like).
		Order("username").
		Limit(limit).
		Find(&users).Error
	return users, err
}
