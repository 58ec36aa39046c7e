package service

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/util"
	"time"
)

// StoryLifetime bounds how far back story listings reach.
const StoryLifetime = 24 * time.Hour

// ReviewInput is the body of POST /reviews.
// swagger:model ReviewInput
type ReviewInput struct {
	EventID string `json:"event_id" binding:"required"`
	Review  string `json:"review" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// StoryInput is the body of POST /stories.
// swagger:model StoryInput
type StoryInput struct {
	Story   string `json:"story" binding:"required,url"`
	Caption string `json:"caption" binding:"max=255"`
}

// ContentService handles event reviews and user stories.
type ContentService struct {
	UserRepo   *repository.UserRepository
	EventRepo  *repository.EventRepository
	ReviewRepo *repository.ReviewRepository
	StoryRepo  *repository.StoryRepository
	now        func() time.Time
}

func NewContentService(
	userRepo *repository.UserRepository,
	eventRepo *repository.EventRepository,
	reviewRepo *repository.ReviewRepository,
	storyRepo *repository.StoryRepository,
) *ContentService {
	return &ContentService{
		UserRepo:   userRepo,
		EventRepo:  eventRepo,
		ReviewRepo: reviewRepo,
		StoryRepo:  storyRepo,
		now:        time.Now,
	}
}

// CreateReview stores a review with a snapshot of the reviewer.
func (s *ContentService) CreateReview(ctx context.Context, userID string, in ReviewInput) (*model.Review, error) {
	if _, err := s.EventRepo.FindByID(ctx, in.EventID); err != nil {
		return nil, err
	}
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	review := &model.Review{EventID: in.EventID, Review: in.Review, Rating: in.Rating}
	model.SnapshotOf(user).ApplyToReview(review)

	if err := s.ReviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ContentService) Reviews(ctx context.Context, eventID string, page, limit int) ([]model.Review, error) {
	if eventID == "" {
		return nil, model.NewValidationError("event_id", "is required")
	}
	return s.ReviewRepo.FindByEvent(ctx, eventID, util.Offset(page, limit), limit)
}

func (s *ContentService) CreateStory(ctx context.Context, userID string, in StoryInput) (*model.Story, error) {
	story := &model.Story{UserID: userID, Story: in.Story, Caption: in.Caption}
	if err := s.StoryRepo.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// Stories lists stories younger than StoryLifetime, for one user or for everyone.
func (s *ContentService) Stories(ctx context.Context, userID string) ([]model.Story, error) {
	var users []string
	if userID != "" {
		users = []string{userID}
	}
	return s.StoryRepo.FindRecent(ctx, users, s.now().Add(-StoryLifetime))
}
