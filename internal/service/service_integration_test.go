package service

import (
	"context"
	"errors"
	"eventhub_backend/internal/config"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/testutil"
	"eventhub_backend/internal/util"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes == nil {
		m.codes = map[string]string{}
	}
	m.codes[to] = code
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "integration-secret", ExpireTime: time.Hour, Issuer: "eventhub"},
	}
}

type services struct {
	db        *gorm.DB
	auth      *AuthService
	events    *EventService
	purchases *PurchaseService
	social    *SocialService
	community *CommunityService
	content   *ContentService
	users     *UserService
	mail      *fakeMailer
}

func newServices(t *testing.T, rdb *redis.Client) *services {
	t.Helper()
	db := testutil.NewMySQL(t)
	cfg := testConfig()

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	categoryRepo := repository.NewEventCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	cache := repository.NewCacheRepository(rdb)
	mail := &fakeMailer{}

	return &services{
		db:        db,
		auth:      NewAuthService(userRepo, cache, mail, cfg),
		events:    NewEventService(db, eventRepo, categoryRepo, reviewRepo, cache, cfg),
		purchases: NewPurchaseService(db, userRepo, eventRepo, repository.NewPurchaseRepository(db)),
		social: NewSocialService(userRepo, eventRepo, repository.NewFriendRepository(db), followRepo,
			repository.NewFavouriteRepository(db)),
		community: NewCommunityService(userRepo, eventRepo, postRepo, repository.NewCommentRepository(db),
			repository.NewReactionRepository(db)),
		content: NewContentService(userRepo, eventRepo, reviewRepo, repository.NewStoryRepository(db)),
		users:   NewUserService(userRepo, followRepo, postRepo),
		mail:    mail,
	}
}

func register(t *testing.T, s *services, username, typ string) *model.User {
	t.Helper()
	res, err := s.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password1",
		Type:     typ,
	})
	require.NoError(t, err)
	return res.User
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()

	res, err := s.auth.Register(ctx, RegisterInput{
		Username: "ada",
		Email:    "Ada@Example.com",
		Password: "password1",
		Type:     model.AccountUser,
		DOB:      "1990-12-10",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.NotEqual(t, "password1", res.User.Password)

	claims, err := util.ParseJWT(res.Token, "integration-secret")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	_, err = s.auth.Register(ctx, RegisterInput{Username: "ada2", Email: "ada@example.com", Password: "password1", Type: "U"})
	var vErr *model.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.True(t, vErr.Duplicate)
	assert.Equal(t, "email", vErr.Field)

	unique, err := s.auth.CheckUnique(ctx, "ada", "new@example.com")
	require.NoError(t, err)
	assert.True(t, unique.UsernameTaken)
	assert.False(t, unique.EmailTaken)

	_, err = s.auth.Login(ctx, "ada", "password1")
	require.NoError(t, err)
	_, err = s.auth.Login(ctx, "ada@example.com", "password1")
	require.NoError(t, err)
	_, err = s.auth.Login(ctx, "ada", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, err = s.auth.Login(ctx, "nobody", "password1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	require.NoError(t, s.auth.ChangePassword(ctx, res.User.ID, "password1", "password2"))
	assert.ErrorIs(t, s.auth.ChangePassword(ctx, res.User.ID, "password1", "password3"), util.ErrInvalidCredentials)
	_, err = s.auth.Login(ctx, "ada", "password2")
	require.NoError(t, err)
}

func TestLoginWithProvider(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()

	profile := &OAuthProfile{Email: "social@example.com", Name: "Social", Picture: "https://img/s.png"}
	first, err := s.auth.LoginWithProvider(ctx, model.AuthGoogle, profile)
	require.NoError(t, err)
	assert.Equal(t, model.AuthGoogle, first.User.AuthType)
	assert.True(t, first.User.EmailVerified)

	second, err := s.auth.LoginWithProvider(ctx, model.AuthGoogle, profile)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	// no password was ever set
	_, err = s.auth.Login(ctx, "social@example.com", "")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestEmailVerificationAndLogout(t *testing.T) {
	s := newServices(t, testutil.NewRedis(t))
	ctx := context.Background()
	user := register(t, s, "verify", model.AccountUser)

	require.NoError(t, s.auth.SendVerification(ctx, user.Email))
	code := s.mail.codes[user.Email]
	require.Len(t, code, 6)

	assert.ErrorIs(t, s.auth.VerifyEmail(ctx, user.Email, "000000x"), util.ErrInvalidVerifyCode)
	require.NoError(t, s.auth.VerifyEmail(ctx, user.Email, code))
	assert.ErrorIs(t, s.auth.VerifyEmail(ctx, user.Email, code), util.ErrInvalidVerifyCode)

	stored, err := s.auth.CurrentUser(ctx, &util.Claims{UserID: user.ID})
	require.NoError(t, err)
	assert.True(t, stored.EmailVerified)

	res, err := s.auth.IssueToken(user)
	require.NoError(t, err)
	claims, err := util.ParseJWT(res.Token, "integration-secret")
	require.NoError(t, err)

	require.NoError(t, s.auth.Logout(ctx, claims))
	revoked, err := s.auth.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestEmailVerificationAttemptBudget(t *testing.T) {
	s := newServices(t, testutil.NewRedis(t))
	ctx := context.Background()
	user := register(t, s, "guesser", model.AccountUser)

	require.NoError(t, s.auth.SendVerification(ctx, user.Email))
	code := s.mail.codes[user.Email]

	for i := 0; i < MaxVerifyAttempts; i++ {
		assert.ErrorIs(t, s.auth.VerifyEmail(ctx, user.Email, "wrong"), util.ErrInvalidVerifyCode)
	}
	// the right code no longer helps once the budget is spent
	assert.ErrorIs(t, s.auth.VerifyEmail(ctx, user.Email, code), util.ErrTooManyAttempts)
	assert.ErrorIs(t, s.auth.VerifyEmail(ctx, user.Email, code), util.ErrInvalidVerifyCode)

	// a new code resets the budget
	require.NoError(t, s.auth.SendVerification(ctx, user.Email))
	assert.ErrorIs(t, s.auth.VerifyEmail(ctx, user.Email, "wrong"), util.ErrInvalidVerifyCode)
	require.NoError(t, s.auth.VerifyEmail(ctx, user.Email, s.mail.codes[user.Email]))

	// verifying an already verified address is not an error
	require.NoError(t, s.auth.SendVerification(ctx, user.Email))
	require.NoError(t, s.auth.VerifyEmail(ctx, user.Email, s.mail.codes[user.Email]))
}

func TestEmailVerificationWithoutRedis(t *testing.T) {
	s := newServices(t, nil)
	user := register(t, s, "noredis", model.AccountUser)
	assert.ErrorIs(t, s.auth.SendVerification(context.Background(), user.Email), util.ErrUnavailable)
}

func TestCreateAndEditEvent(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	host := register(t, s, "host", model.AccountHost)
	other := register(t, s, "other", model.AccountHost)

	tickets := 100
	created, err := s.events.Create(ctx, host.ID, EventInput{
		Name:    "Street Food Fair",
		Price:   20,
		Date:    "2030-05-01",
		Tickets: &tickets,
		Tags:    []string{"fair", "food_festival"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fair", "food_festival"}, created.Tags)
	require.NotNil(t, created.Remaining)
	assert.Equal(t, 100, *created.Remaining)

	_, err = s.events.Create(ctx, host.ID, EventInput{Name: "Bad", Tags: []string{"opera"}})
	require.ErrorIs(t, err, model.ErrValidation)
	hosted, err := s.events.HostEvents(ctx, host.ID)
	require.NoError(t, err)
	assert.Len(t, hosted, 1, "failed create must roll back")

	name := "Renamed"
	_, err = s.events.Edit(ctx, other.ID, EditEventInput{ID: created.ID, Name: &name})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	tags := []string{"parade"}
	edited, err := s.events.Edit(ctx, host.ID, EditEventInput{ID: created.ID, Name: &name, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", edited.Name)
	assert.Equal(t, []string{"parade"}, edited.Tags)

	_, err = s.events.GetEvent(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestTrendingIsCached(t *testing.T) {
	s := newServices(t, testutil.NewRedis(t))
	ctx := context.Background()
	host := register(t, s, "trendhost", model.AccountHost)

	_, err := s.events.Create(ctx, host.ID, EventInput{Name: "First"})
	require.NoError(t, err)

	events, err := s.events.Trending(ctx, TrendingLimit)
	require.NoError(t, err)
	require.Len(t, events, 1)

	// bypass the service so the cache is not invalidated
	require.NoError(t, s.events.EventRepo.Create(ctx, &model.Event{Name: "Second"}))

	events, err = s.events.Trending(ctx, TrendingLimit)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	_, err = s.events.Create(ctx, host.ID, EventInput{Name: "Third"})
	require.NoError(t, err)

	events, err = s.events.Trending(ctx, TrendingLimit)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestConcurrentPurchasesDoNotOversell(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	host := register(t, s, "seller", model.AccountHost)
	buyer := register(t, s, "buyer", model.AccountUser)

	tickets := 5
	event, err := s.events.Create(ctx, host.ID, EventInput{Name: "Small venue", Tickets: &tickets})
	require.NoError(t, err)

	const attempts = 12
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.purchases.Buy(ctx, buyer.ID, event.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	sold, soldOut := 0, 0
	for err := range results {
		switch {
		case err == nil:
			sold++
		case errors.Is(err, util.ErrSoldOut):
			soldOut++
		default:
			t.Fatalf("unexpected purchase error: %v", err)
		}
	}
	assert.Equal(t, 5, sold)
	assert.Equal(t, attempts-5, soldOut)

	stored, err := s.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Sold)
	assert.Equal(t, 0, *stored.Remaining)

	purchases, err := s.purchases.ForUser(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, purchases, 5)
	assert.Equal(t, "buyer", purchases[0].Username)
}

func TestEditsDoNotUndoConcurrentSales(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	host := register(t, s, "editor", model.AccountHost)
	buyer := register(t, s, "fan", model.AccountUser)

	tickets := 50
	event, err := s.events.Create(ctx, host.ID, EventInput{Name: "Open air", Tickets: &tickets})
	require.NoError(t, err)

	const rounds = 8
	var wg sync.WaitGroup
	errs := make(chan error, 2*rounds)
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.purchases.Buy(ctx, buyer.ID, event.ID)
			errs <- err
		}()
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("Open air #%d", i)
			_, err := s.events.Edit(ctx, host.ID, EditEventInput{ID: event.ID, Name: &name})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := s.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, rounds, stored.Sold)

	purchases, err := s.purchases.ForUser(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Len(t, purchases, rounds)
}

func TestPurchaseInactiveEvent(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	host := register(t, s, "closer", model.AccountHost)
	buyer := register(t, s, "late", model.AccountUser)

	event, err := s.events.Create(ctx, host.ID, EventInput{Name: "Closed"})
	require.NoError(t, err)

	inactive := false
	_, err = s.events.Edit(ctx, host.ID, EditEventInput{ID: event.ID, IsActive: &inactive})
	require.NoError(t, err)

	_, err = s.purchases.Buy(ctx, buyer.ID, event.ID)
	assert.ErrorIs(t, err, util.ErrEventInactive)

	_, err = s.purchases.Buy(ctx, buyer.ID, "missing")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestSocialGraph(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	host := register(t, s, "stage", model.AccountHost)
	alice := register(t, s, "alice", model.AccountUser)
	bob := register(t, s, "bob", model.AccountUser)

	_, err := s.social.Follow(ctx, alice.ID, bob.ID)
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.social.Follow(ctx, alice.ID, host.ID)
	require.NoError(t, err)
	_, err = s.social.Follow(ctx, alice.ID, host.ID)
	require.ErrorIs(t, err, model.ErrValidation)

	profile, err := s.users.GetProfile(ctx, host.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, profile.Followers)

	require.NoError(t, s.social.Unfollow(ctx, alice.ID, host.ID))
	assert.ErrorIs(t, s.social.Unfollow(ctx, alice.ID, host.ID), util.ErrNotFound)

	req, err := s.social.RequestFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendPending, req.Status)
	assert.Equal(t, "bob", req.FriendName)

	_, err = s.social.RequestFriend(ctx, bob.ID, alice.ID)
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.social.RespondFriend(ctx, alice.ID, req.ID, true)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	accepted, err := s.social.RespondFriend(ctx, bob.ID, req.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.FriendAccepted, accepted.Status)

	friends, err := s.social.Friends(ctx, alice.ID, model.FriendAccepted)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}

func TestFavourites(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	host := register(t, s, "favhost", model.AccountHost)
	fan := register(t, s, "fan", model.AccountUser)

	event, err := s.events.Create(ctx, host.ID, EventInput{Name: "Gig"})
	require.NoError(t, err)

	_, err = s.social.AddFavourite(ctx, fan.ID, event.ID)
	require.NoError(t, err)
	_, err = s.social.AddFavourite(ctx, fan.ID, event.ID)
	require.ErrorIs(t, err, model.ErrValidation)
	_, err = s.social.AddFavourite(ctx, fan.ID, "missing")
	require.ErrorIs(t, err, util.ErrNotFound)

	favs, err := s.social.Favourites(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Gig", favs[0].Name)
}

func TestPostsCommentsReactionsReviews(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	host := register(t, s, "poster", model.AccountHost)
	fan := register(t, s, "reader", model.AccountUser)

	post, err := s.community.CreatePost(ctx, fan.ID, PostInput{Content: "hello", Pictures: []string{"https://img/1.png"}})
	require.NoError(t, err)
	assert.Equal(t, "https://img/1.png", post.Pic1)

	_, err = s.community.CreateComment(ctx, host.ID, CommentInput{PostID: post.ID, Content: "nice"})
	require.NoError(t, err)
	_, err = s.community.CreateComment(ctx, host.ID, CommentInput{Content: "orphan"})
	require.ErrorIs(t, err, model.ErrValidation)
	_, err = s.community.CreateComment(ctx, host.ID, CommentInput{PostID: "missing", Content: "x"})
	require.ErrorIs(t, err, util.ErrNotFound)

	comments, err := s.community.Comments(ctx, "", post.ID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	reaction, err := s.community.React(ctx, host.ID, ReactionInput{PostID: post.ID, Reaction: "like"})
	require.NoError(t, err)
	assert.Equal(t, "poster", reaction.Username)

	detail, err := s.community.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Reactions, 1)
	assert.EqualValues(t, 1, detail.Reactions[0].Count)

	event, err := s.events.Create(ctx, host.ID, EventInput{Name: "Reviewed"})
	require.NoError(t, err)
	review, err := s.content.CreateReview(ctx, fan.ID, ReviewInput{EventID: event.ID, Review: "great", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "reader", review.Username)

	detailEvent, err := s.events.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detailEvent.Reviews.Count)
	assert.InDelta(t, 4.0, detailEvent.Reviews.Average, 0.001)

	_, err = s.content.CreateStory(ctx, fan.ID, StoryInput{Story: "https://img/story.png"})
	require.NoError(t, err)
	stories, err := s.content.Stories(ctx, fan.ID)
	require.NoError(t, err)
	assert.Len(t, stories, 1)
}

func TestAutoTagging(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()
	categories := repository.NewEventCategoryRepository(s.db)

	tagged := &model.Event{Name: "Summer Food Festival"}
	plain := &model.Event{Name: "Quiet evening"}
	require.NoError(t, s.events.EventRepo.Create(ctx, tagged))
	require.NoError(t, s.events.EventRepo.Create(ctx, plain))

	svc := NewAutoTaggingService(categories)
	n, err := svc.RunAutoTagging(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	c, err := categories.FindByEventID(ctx, tagged.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"festival", "food_festival"}, c.Tags())

	n, err = svc.RunAutoTagging(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
