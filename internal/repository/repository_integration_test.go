package repository

import (
	"context"
	"errors"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/testutil"
	"eventhub_backend/internal/util"
	"eventhub_backend/pkg/geo"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func newUser(username, email string) *model.User {
	return &model.User{Username: username, Email: email, Type: model.AccountUser}
}

func requireDuplicate(t *testing.T, err error, field string) {
	t.Helper()
	require.ErrorIs(t, err, model.ErrValidation)
	var vErr *model.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.True(t, vErr.Duplicate)
	assert.Equal(t, field, vErr.Field)
}

func TestUserUniqueness(t *testing.T) {
	db := testutil.NewMySQL(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("ada", "ada@example.com")))

	requireDuplicate(t, repo.Create(ctx, newUser("ada", "other@example.com")), "username")
	requireDuplicate(t, repo.Create(ctx, newUser("grace", "ADA@example.com")), "email")

	taken, err := repo.EmailExists(ctx, " Ada@Example.com ")
	require.NoError(t, err)
	assert.True(t, taken)

	found, err := repo.FindByLogin(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", found.Email)
	assert.Equal(t, model.AuthEmail, found.AuthType)
	assert.True(t, found.IsActive)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestUserListSkipsInactive(t *testing.T) {
	db := testutil.NewMySQL(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	active := newUser("active", "active@example.com")
	inactive := newUser("gone", "gone@example.com")
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	inactive.IsActive = false
	require.NoError(t, repo.Update(ctx, inactive))

	users, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "active", users[0].Username)

	require.NoError(t, repo.MarkEmailVerified(ctx, "active@example.com"))
	assert.ErrorIs(t, repo.MarkEmailVerified(ctx, "nobody@example.com"), util.ErrNotFound)
}

func TestEventCategoryUniqueness(t *testing.T) {
	db := testutil.NewMySQL(t)
	repo := NewEventCategoryRepository(db)
	ctx := context.Background()

	first, err := model.NewEventCategory("event-1", []string{"party"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := model.NewEventCategory("event-1", []string{"fair"})
	require.NoError(t, err)
	requireDuplicate(t, repo.Create(ctx, second), "event_id")

	updated, err := repo.Upsert(ctx, "event-1", []string{"fair", "parade"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, []string{"fair", "parade"}, updated.Tags())
}

func TestFriendStatusDefaultsToPending(t *testing.T) {
	db := testutil.NewMySQL(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	f := &model.Friend{UserID: "u1", FriendID: "u2", FriendName: "Bob"}
	require.NoError(t, repo.Create(ctx, f))

	stored, err := repo.FindBetween(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.Equal(t, model.FriendPending, stored.Status)
}

func TestNearbyEvents(t *testing.T) {
	db := testutil.NewMySQL(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	events := []*model.Event{
		{Name: "origin", Latitude: floatPtr(0), Longitude: floatPtr(0)},
		{Name: "near", Latitude: floatPtr(0), Longitude: floatPtr(5)},
		{Name: "far", Latitude: floatPtr(0), Longitude: floatPtr(20)},
		{Name: "nowhere"},
	}
	for _, e := range events {
		require.NoError(t, repo.Create(ctx, e))
	}

	found, err := repo.Nearby(ctx, 0, 0, 1000, geo.Kilometers, 50)
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "origin", found[0].Name)
	assert.InDelta(t, 0, found[0].Distance, 0.001)
	assert.Equal(t, "near", found[1].Name)
	assert.InDelta(t, 556, found[1].Distance, 1)

	miles, err := repo.Nearby(ctx, 0, 0, 1000, geo.Miles, 50)
	require.NoError(t, err)
	require.Len(t, miles, 2)
	assert.InDelta(t, 345.5, miles[1].Distance, 1)
}

func TestTrendingOrdersBySold(t *testing.T) {
	db := testutil.NewMySQL(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	require.NoError(t, repo.Create(ctx, &model.Event{Name: "quiet", Date: &future, Sold: 1}))
	require.NoError(t, repo.Create(ctx, &model.Event{Name: "busy", Date: &future, Sold: 9}))
	require.NoError(t, repo.Create(ctx, &model.Event{Name: "over", Date: &past, Sold: 50}))
	require.NoError(t, repo.Create(ctx, &model.Event{Name: "undated", Sold: 3}))

	events, err := repo.Trending(ctx, now, 10)
	require.NoError(t, err)

	var names []string
	for _, e := range events {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"busy", "undated", "quiet"}, names)
}

func TestFindByTags(t *testing.T) {
	db := testutil.NewMySQL(t)
	events := NewEventRepository(db)
	categories := NewEventCategoryRepository(db)
	ctx := context.Background()

	party := &model.Event{Name: "party"}
	fair := &model.Event{Name: "fair"}
	require.NoError(t, events.Create(ctx, party))
	require.NoError(t, events.Create(ctx, fair))

	_, err := categories.Upsert(ctx, party.ID, []string{"party"})
	require.NoError(t, err)
	_, err = categories.Upsert(ctx, fair.ID, []string{"fair", "food_festival"})
	require.NoError(t, err)

	found, err := events.FindByTags(ctx, []string{"food_festival"}, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, fair.ID, found[0].ID)

	found, err = events.FindByTags(ctx, []string{"party", "fair"}, 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestHostStats(t *testing.T) {
	db := testutil.NewMySQL(t)
	ctx := context.Background()
	events := NewEventRepository(db)

	a := &model.Event{Name: "a", HostID: "host", Price: 10, Tickets: intPtr(100), Sold: 4}
	b := &model.Event{Name: "b", HostID: "host", Price: 25, Tickets: intPtr(10), Sold: 2}
	other := &model.Event{Name: "c", HostID: "someone", Price: 99, Sold: 7}
	for _, e := range []*model.Event{a, b, other} {
		require.NoError(t, events.Create(ctx, e))
	}

	require.NoError(t, NewFollowRepository(db).Create(ctx, &model.Follow{Host: "host", Follower: "fan"}))

	reviews := NewReviewRepository(db)
	require.NoError(t, reviews.Create(ctx, &model.Review{EventID: a.ID, UserID: "fan", Review: "ok", Rating: 3}))
	require.NoError(t, reviews.Create(ctx, &model.Review{EventID: b.ID, UserID: "fan", Review: "great", Rating: 5}))

	stats, err := NewAnalyticsRepository(db).HostStats(ctx, "host")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Events)
	assert.EqualValues(t, 110, stats.Tickets)
	assert.EqualValues(t, 6, stats.Sold)
	assert.EqualValues(t, 90, stats.Revenue)
	assert.EqualValues(t, 1, stats.Followers)
	assert.EqualValues(t, 2, stats.Reviews)
	assert.InDelta(t, 4.0, stats.AvgRating, 0.001)
}

func TestFavouriteAndFollowDelete(t *testing.T) {
	db := testutil.NewMySQL(t)
	ctx := context.Background()

	favs := NewFavouriteRepository(db)
	require.NoError(t, favs.Create(ctx, &model.Favourite{UserID: "u1", EventID: "e1"}))
	require.NoError(t, favs.Delete(ctx, "u1", "e1"))
	assert.ErrorIs(t, favs.Delete(ctx, "u1", "e1"), util.ErrNotFound)

	follows := NewFollowRepository(db)
	assert.ErrorIs(t, follows.Delete(ctx, "h", "f"), util.ErrNotFound)
}

func TestSocialPairsAreUnique(t *testing.T) {
	db := testutil.NewMySQL(t)
	ctx := context.Background()

	favs := NewFavouriteRepository(db)
	require.NoError(t, favs.Create(ctx, &model.Favourite{UserID: "u1", EventID: "e1"}))
	requireDuplicate(t, favs.Create(ctx, &model.Favourite{UserID: "u1", EventID: "e1"}), "event_id")
	require.NoError(t, favs.Create(ctx, &model.Favourite{UserID: "u2", EventID: "e1"}))

	follows := NewFollowRepository(db)
	require.NoError(t, follows.Create(ctx, &model.Follow{Host: "h1", Follower: "f1"}))
	requireDuplicate(t, follows.Create(ctx, &model.Follow{Host: "h1", Follower: "f1"}), "host")

	count, err := follows.CountFollowers(ctx, "h1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	friends := NewFriendRepository(db)
	require.NoError(t, friends.Create(ctx, &model.Friend{UserID: "u1", FriendID: "u2", FriendName: "Bob"}))
	requireDuplicate(t, friends.Create(ctx, &model.Friend{UserID: "u2", FriendID: "u1", FriendName: "Ann"}), "friend_id")
}

func TestMarkEmailVerifiedTwice(t *testing.T) {
	db := testutil.NewMySQL(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("ada", "ada@example.com")))
	require.NoError(t, repo.MarkEmailVerified(ctx, "ada@example.com"))
	require.NoError(t, repo.MarkEmailVerified(ctx, "ada@example.com"))

	assert.ErrorIs(t, repo.MarkEmailVerified(ctx, "nobody@example.com"), util.ErrNotFound)
}

func TestEventUpdateKeepsLaterSales(t *testing.T) {
	db := testutil.NewMySQL(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	event := &model.Event{Name: "Gig", Price: 5, Tickets: intPtr(10), IsActive: true}
	require.NoError(t, repo.Create(ctx, event))

	stale, err := repo.FindByID(ctx, event.ID)
	require.NoError(t, err)

	// a sale lands after the edit loaded the row
	require.NoError(t, repo.IncrementSold(ctx, event.ID, 2))

	stale.Name = "Gig (moved)"
	require.NoError(t, repo.Update(ctx, stale))

	stored, err := repo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gig (moved)", stored.Name)
	assert.Equal(t, 2, stored.Sold)
}

func TestCacheRepository(t *testing.T) {
	rdb := testutil.NewRedis(t)
	cache := NewCacheRepository(rdb)
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, TrendingKey(10), []string{"a", "b"}, time.Minute))
	var got []string
	hit, err := cache.GetJSON(ctx, TrendingKey(10), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, cache.InvalidateTrending(ctx))
	hit, err = cache.GetJSON(ctx, TrendingKey(10), &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.RevokeToken(ctx, "jti-1", time.Minute))
	revoked, err := cache.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, cache.SaveVerifyCode(ctx, "Ada@Example.com", "123456", time.Minute))
	code, err := cache.VerifyCode(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)
}

func TestCacheRepositoryWithoutRedis(t *testing.T) {
	cache := NewCacheRepository(nil)
	ctx := context.Background()

	assert.False(t, cache.Enabled())
	assert.NoError(t, cache.SetJSON(ctx, "k", 1, time.Minute))

	var v int
	hit, err := cache.GetJSON(ctx, "k", &v)
	assert.NoError(t, err)
	assert.False(t, hit)

	revoked, err := cache.IsTokenRevoked(ctx, "jti")
	assert.NoError(t, err)
	assert.False(t, revoked)

	assert.ErrorIs(t, cache.SaveVerifyCode(ctx, "a@b.c", "1", time.Minute), util.ErrUnavailable)
}
