package service

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/util"
	"strings"
)

// ProfileInput is the body of PUT /profile. Nil fields are left unchanged.
// swagger:model ProfileInput
type ProfileInput struct {
	Name        *string `json:"name"`
	Username    *string `json:"username" binding:"omitempty,min=1,max=191"`
	PhoneNumber *string `json:"phone_number"`
	Bio         *string `json:"bio" binding:"omitempty,max=255"`
	ProfilePic  *string `json:"profile_pic" binding:"omitempty,url"`
	Location    *string `json:"location"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=F M"`
	DOB         *string `json:"dob"`
}

// Profile is a user with follower, following and post counts.
type Profile struct {
	*model.User
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Posts     int64 `json:"posts"`
}

// UserService serves profiles and user lookup.
type UserService struct {
	UserRepo   *repository.UserRepository
	FollowRepo *repository.FollowRepository
	PostRepo   *repository.PostRepository
}

func NewUserService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository, postRepo *repository.PostRepository) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		FollowRepo: followRepo,
		PostRepo:   postRepo,
	}
}

func (s *UserService) GetUsers(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(ctx, util.Offset(page, limit), limit)
}

func (s *UserService) SearchUsers(ctx context.Context, query string, limit int) ([]model.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, model.NewValidationError("query", "is required")
	}
	return s.UserRepo.Search(ctx, query, util.ClampLimit(limit))
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Profile{User: user}
	if p.Followers, err = s.FollowRepo.CountFollowers(ctx, userID); err != nil {
		return nil, err
	}
	if p.Following, err = s.FollowRepo.CountFollowing(ctx, userID); err != nil {
		return nil, err
	}
	if p.Posts, err = s.PostRepo.CountByUser(ctx, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*Profile, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.ProfilePic != nil {
		user.ProfilePic = *in.ProfilePic
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.Gender != nil {
		user.Gender = in.Gender
	}
	if in.DOB != nil {
		dob, err := parseDate("dob", *in.DOB)
		if err != nil {
			return nil, err
		}
		user.DOB = dob
	}

	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
