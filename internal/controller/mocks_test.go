package controller

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/service"
	"eventhub_backend/internal/util"
	"eventhub_backend/pkg/geo"

	"github.com/stretchr/testify/mock"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuthService) CheckUnique(ctx context.Context, username, email string) (*service.UniqueResult, error) {
	args := m.Called(ctx, username, email)
	res, _ := args.Get(0).(*service.UniqueResult)
	return res, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, identifier, password)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, claims *util.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, claims *util.Claims) (*model.User, error) {
	args := m.Called(ctx, claims)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return m.Called(ctx, userID, oldPassword, newPassword).Error(0)
}

func (m *mockAuthService) LoginWithProvider(ctx context.Context, provider string, profile *service.OAuthProfile) (*service.AuthResult, error) {
	args := m.Called(ctx, provider, profile)
	res, _ := args.Get(0).(*service.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuthService) SendVerification(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

type mockOAuthService struct {
	mock.Mock
}

func (m *mockOAuthService) AuthCodeURL(provider, state string) (string, error) {
	args := m.Called(provider, state)
	return args.String(0), args.Error(1)
}

func (m *mockOAuthService) Exchange(ctx context.Context, provider, code string) (*service.OAuthProfile, error) {
	args := m.Called(ctx, provider, code)
	profile, _ := args.Get(0).(*service.OAuthProfile)
	return profile, args.Error(1)
}

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) GetEvent(ctx context.Context, id string) (*service.EventDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*service.EventDetail)
	return detail, args.Error(1)
}

func (m *mockEventService) Trending(ctx context.Context, limit int) ([]model.Event, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]model.Event)
	return events, args.Error(1)
}

func (m *mockEventService) List(ctx context.Context, page, limit int) ([]model.Event, int64, error) {
	args := m.Called(ctx, page, limit)
	events, _ := args.Get(0).([]model.Event)
	return events, args.Get(1).(int64), args.Error(2)
}

func (m *mockEventService) Search(ctx context.Context, query string, limit int) ([]model.Event, error) {
	args := m.Called(ctx, query, limit)
	events, _ := args.Get(0).([]model.Event)
	return events, args.Error(1)
}

func (m *mockEventService) HostEvents(ctx context.Context, hostID string) ([]model.Event, error) {
	args := m.Called(ctx, hostID)
	events, _ := args.Get(0).([]model.Event)
	return events, args.Error(1)
}

func (m *mockEventService) SearchByTags(ctx context.Context, tags []string, limit int) ([]model.Event, error) {
	args := m.Called(ctx, tags, limit)
	events, _ := args.Get(0).([]model.Event)
	return events, args.Error(1)
}

func (m *mockEventService) Closest(ctx context.Context, lat, lon, distance float64, unit geo.Unit, limit int) ([]model.EventWithDistance, error) {
	args := m.Called(ctx, lat, lon, distance, unit, limit)
	events, _ := args.Get(0).([]model.EventWithDistance)
	return events, args.Error(1)
}

func (m *mockEventService) Create(ctx context.Context, hostID string, in service.EventInput) (*service.EventDetail, error) {
	args := m.Called(ctx, hostID, in)
	detail, _ := args.Get(0).(*service.EventDetail)
	return detail, args.Error(1)
}

func (m *mockEventService) Edit(ctx context.Context, hostID string, in service.EditEventInput) (*service.EventDetail, error) {
	args := m.Called(ctx, hostID, in)
	detail, _ := args.Get(0).(*service.EventDetail)
	return detail, args.Error(1)
}

type mockPurchaseService struct {
	mock.Mock
}

func (m *mockPurchaseService) Buy(ctx context.Context, userID, eventID string) (*model.Purchase, error) {
	args := m.Called(ctx, userID, eventID)
	p, _ := args.Get(0).(*model.Purchase)
	return p, args.Error(1)
}

func (m *mockPurchaseService) ForUser(ctx context.Context, userID string) ([]model.Purchase, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).([]model.Purchase)
	return p, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetUsers(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserService) SearchUsers(ctx context.Context, query string, limit int) ([]model.User, error) {
	args := m.Called(ctx, query, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserService) GetProfile(ctx context.Context, userID string) (*service.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*service.Profile)
	return p, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID string, in service.ProfileInput) (*service.Profile, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*service.Profile)
	return p, args.Error(1)
}
