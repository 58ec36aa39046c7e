package service

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/util"
	"strings"
)

// PostInput is the body of POST /posts.
// swagger:model PostInput
type PostInput struct {
	Content  string   `json:"content"`
	Pictures []string `json:"pictures" binding:"max=4,dive,url"`
}

// CommentInput is the body of POST /comments; exactly one of EventID and PostID is set.
// swagger:model CommentInput
type CommentInput struct {
	EventID string `json:"event_id"`
	PostID  string `json:"post"`
	Content string `json:"content" binding:"required"`
}

// ReactionInput is the body of POST /reactions.
// swagger:model ReactionInput
type ReactionInput struct {
	PostID   string `json:"post_id" binding:"required"`
	Reaction string `json:"reaction" binding:"required,max=32"`
}

// PostDetail is a post with its reaction tallies.
type PostDetail struct {
	model.Post
	Reactions []repository.ReactionCount `json:"reactions"`
}

type CommunityService struct {
	UserRepo     *repository.UserRepository
	EventRepo    *repository.EventRepository
	PostRepo     *repository.PostRepository
	CommentRepo  *repository.CommentRepository
	ReactionRepo *repository.ReactionRepository
}

func NewCommunityService(
	userRepo *repository.UserRepository,
	eventRepo *repository.EventRepository,
	postRepo *repository.PostRepository,
	commentRepo *repository.CommentRepository,
	reactionRepo *repository.ReactionRepository,
) *CommunityService {
	return &CommunityService{
		UserRepo:     userRepo,
		EventRepo:    eventRepo,
		PostRepo:     postRepo,
		CommentRepo:  commentRepo,
		ReactionRepo: reactionRepo,
	}
}

func (s *CommunityService) CreatePost(ctx context.Context, userID string, in PostInput) (*model.Post, error) {
	post := &model.Post{UserID: userID, Content: strings.TrimSpace(in.Content)}
	if err := post.SetPictures(in.Pictures); err != nil {
		return nil, err
	}
	if err := s.PostRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Posts lists posts newest first; userID narrows to one author.
func (s *CommunityService) Posts(ctx context.Context, userID string, page, limit int) ([]model.Post, int64, error) {
	return s.PostRepo.FindWithPagination(ctx, userID, util.Offset(page, limit), limit)
}

func (s *CommunityService) GetPost(ctx context.Context, id string) (*PostDetail, error) {
	post, err := s.PostRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.ReactionRepo.CountByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []repository.ReactionCount{}
	}
	return &PostDetail{Post: *post, Reactions: counts}, nil
}

func (s *CommunityService) CreateComment(ctx context.Context, userID string, in CommentInput) (*model.Comment, error) {
	comment := &model.Comment{
		EventID: in.EventID,
		PostID:  in.PostID,
		UserID:  userID,
		Content: strings.TrimSpace(in.Content),
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	if comment.EventID != "" {
		if _, err := s.EventRepo.FindByID(ctx, comment.EventID); err != nil {
			return nil, err
		}
	} else if _, err := s.PostRepo.FindByID(ctx, comment.PostID); err != nil {
		return nil, err
	}

	if err := s.CommentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommunityService) Comments(ctx context.Context, eventID, postID string, page, limit int) ([]model.Comment, error) {
	if (eventID == "") == (postID == "") {
		return nil, model.NewValidationError("post", "pass exactly one of event_id or post")
	}
	return s.CommentRepo.FindByTarget(ctx, eventID, postID, util.Offset(page, limit), limit)
}

// React records a reaction with a snapshot of the reacting user.
func (s *CommunityService) React(ctx context.Context, userID string, in ReactionInput) (*model.Reaction, error) {
	if _, err := s.PostRepo.FindByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reaction := &model.Reaction{PostID: in.PostID, Reaction: strings.TrimSpace(in.Reaction)}
	model.SnapshotOf(user).ApplyToReaction(reaction)

	if err := s.ReactionRepo.Create(ctx, reaction); err != nil {
		return nil, err
	}
	return reaction, nil
}
