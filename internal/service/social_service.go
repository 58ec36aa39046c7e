package service

import (
	"context"
	"errors"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/util"
)

// SocialService manages friend requests, host follows and favourite events.
type SocialService struct {
	UserRepo      *repository.UserRepository
	EventRepo     *repository.EventRepository
	FriendRepo    *repository.FriendRepository
	FollowRepo    *repository.FollowRepository
	FavouriteRepo *repository.FavouriteRepository
}

func NewSocialService(
	userRepo *repository.UserRepository,
	eventRepo *repository.EventRepository,
	friendRepo *repository.FriendRepository,
	followRepo *repository.FollowRepository,
	favouriteRepo *repository.FavouriteRepository,
) *SocialService {
	return &SocialService{
		UserRepo:      userRepo,
		EventRepo:     eventRepo,
		FriendRepo:    friendRepo,
		FollowRepo:    followRepo,
		FavouriteRepo: favouriteRepo,
	}
}

func displayName(u *model.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// RequestFriend sends a pending request. One request may exist per pair,
// whichever side sent it.
func (s *SocialService) RequestFriend(ctx context.Context, userID, friendID string) (*model.Friend, error) {
	if userID == friendID {
		return nil, model.NewValidationError("friend_id", "cannot befriend yourself")
	}

	friend, err := s.UserRepo.FindByID(ctx, friendID)
	if err != nil {
		return nil, err
	}

	_, err = s.FriendRepo.FindBetween(ctx, userID, friendID)
	if err == nil {
		return nil, model.NewDuplicateError("friend_id")
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, err
	}

	request := &model.Friend{
		UserID:     userID,
		FriendID:   friendID,
		FriendName: displayName(friend),
		Status:     model.FriendPending,
	}
	if err := s.FriendRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// RespondFriend accepts or rejects a pending request addressed to userID.
func (s *SocialService) RespondFriend(ctx context.Context, userID, requestID string, accept bool) (*model.Friend, error) {
	request, err := s.FriendRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.FriendID != userID {
		return nil, util.ErrPermissionDenied
	}
	if request.Status != model.FriendPending {
		return nil, model.NewValidationError("status", "request was already answered")
	}

	request.Status = model.FriendRejected
	if accept {
		request.Status = model.FriendAccepted
	}
	if err := s.FriendRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *SocialService) Friends(ctx context.Context, userID, status string) ([]model.Friend, error) {
	switch status {
	case "", model.FriendPending, model.FriendAccepted, model.FriendRejected:
	default:
		return nil, model.NewValidationError("status", "must be one of [pending accepted rejected]")
	}
	return s.FriendRepo.FindForUser(ctx, userID, status)
}

// Follow subscribes followerID to a host account.
func (s *SocialService) Follow(ctx context.Context, followerID, hostID string) (*model.Follow, error) {
	host, err := s.UserRepo.FindByID(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if !host.IsHost() {
		return nil, model.NewValidationError("host", "is not a host account")
	}

	exists, err := s.FollowRepo.Exists(ctx, hostID, followerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.NewDuplicateError("host")
	}

	follow := &model.Follow{Host: hostID, Follower: followerID}
	if err := s.FollowRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

func (s *SocialService) Unfollow(ctx context.Context, followerID, hostID string) error {
	return s.FollowRepo.Delete(ctx, hostID, followerID)
}

func (s *SocialService) AddFavourite(ctx context.Context, userID, eventID string) (*model.Favourite, error) {
	if _, err := s.EventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	exists, err := s.FavouriteRepo.Exists(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.NewDuplicateError("event_id")
	}

	fav := &model.Favourite{UserID: userID, EventID: eventID}
	if err := s.FavouriteRepo.Create(ctx, fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (s *SocialService) RemoveFavourite(ctx context.Context, userID, eventID string) error {
	return s.FavouriteRepo.Delete(ctx, userID, eventID)
}

func (s *SocialService) Favourites(ctx context.Context, userID string) ([]model.Event, error) {
	return s.FavouriteRepo.FavouriteEvents(ctx, userID)
}
