package repository

import (
	"context"
	"eventhub_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return translate(r.DB.WithContext(ctx).Create(post).Error)
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.DB.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// FindWithPagination lists posts newest first, optionally for one user.
func (r *PostRepository) FindWithPagination(ctx context.Context, userID string, offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Post{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return translate(r.DB.WithContext(ctx).Create(comment).Error)
}

// FindByTarget lists comments on an event or a post, oldest first.
func (r *CommentRepository) FindByTarget(ctx context.Context, eventID, postID string, offset, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	query := r.DB.WithContext(ctx)
	if eventID != "" {
		query = query.Where("event_id = ?", eventID)
	} else {
		query = query.Where("post = ?", postID)
	}
	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, err
}

type ReactionRepository struct {
	DB *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{DB: db}
}

func (r *ReactionRepository) Create(ctx context.Context, reaction *model.Reaction) error {
	return translate(r.DB.WithContext(ctx).Create(reaction).Error)
}

// ReactionCount is the number of reactions of one kind on a post.
type ReactionCount struct {
	Reaction string `json:"reaction"`
	Count    int64  `json:"count"`
}

func (r *ReactionRepository) CountByPost(ctx context.Context, postID string) ([]ReactionCount, error) {
	var counts []ReactionCount
	err := r.DB.WithContext(ctx).Model(&model.Reaction{}).
		Select("reaction, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("reaction").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}
