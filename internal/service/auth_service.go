package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"eventhub_backend/internal/config"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/util"
	"eventhub_backend/pkg/logger"
	"eventhub_backend/pkg/monitoring"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the body of POST /register.
// swagger:model RegisterInput
type RegisterInput struct {
	Name        string  `json:"name"`
	Username    string  `json:"username" binding:"required,max=191"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6,max=72"`
	Type        string  `json:"type" binding:"required,oneof=H U"`
	PhoneNumber string  `json:"phone_number"`
	Bio         string  `json:"bio"`
	Location    string  `json:"location"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=F M"`
	DOB         string  `json:"dob"`
}

// AuthResult is returned by every action that signs a user in.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// UniqueResult reports which of the given identifiers are taken.
type UniqueResult struct {
	UsernameTaken bool `json:"username_taken"`
	EmailTaken    bool `json:"email_taken"`
}

// MaxVerifyAttempts is how many guesses one emailed code allows.
const MaxVerifyAttempts = 5

// Mailer delivers transactional mail.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Cache    *repository.CacheRepository
	Mail     Mailer
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cache *repository.CacheRepository, mail Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cache:    cache,
		Mail:     mail,
		Cfg:      cfg,
	}
}

func (s *AuthService) IssueToken(user *model.User) (*AuthResult, error) {
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.Issuer, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) CheckUnique(ctx context.Context, username, email string) (*UniqueResult, error) {
	var res UniqueResult
	var err error

	if username != "" {
		if res.UsernameTaken, err = s.UserRepo.UsernameExists(ctx, username); err != nil {
			return nil, err
		}
	}
	if email != "" {
		if res.EmailTaken, err = s.UserRepo.EmailExists(ctx, email); err != nil {
			return nil, err
		}
	}
	return &res, nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	unique, err := s.CheckUnique(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if unique.UsernameTaken {
		return nil, model.NewDuplicateError("username")
	}
	if unique.EmailTaken {
		return nil, model.NewDuplicateError("email")
	}

	dob, err := parseDate("dob", in.DOB)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:        in.Name,
		Username:    in.Username,
		Email:       in.Email,
		Type:        in.Type,
		PhoneNumber: in.PhoneNumber,
		Bio:         in.Bio,
		Location:    in.Location,
		Gender:      in.Gender,
		DOB:         dob,
		Password:    string(hashed),
		AuthType:    model.AuthEmail,
		IsActive:    true,
	}

	// a concurrent registration can still win the race; the unique index reports it
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	monitoring.Registrations.WithLabelValues(user.AuthType).Inc()
	logger.Log.Info("User registered", zap.String("user_id", user.ID), zap.String("type", user.Type))

	return s.IssueToken(user)
}

// Login accepts an email address or a username as identifier.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	user, err := s.UserRepo.FindByLogin(ctx, identifier)
	if errors.Is(err, util.ErrNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive || user.Password == "" {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	return s.IssueToken(user)
}

// Logout revokes the token id until the token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	return s.Cache.RevokeToken(ctx, claims.ID, claims.TokenTTL())
}

func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.Cache.IsTokenRevoked(ctx, jti)
}

func (s *AuthService) CurrentUser(ctx context.Context, claims *util.Claims) (*model.User, error) {
	if claims == nil {
		return nil, util.ErrInvalidToken
	}
	return s.UserRepo.FindByID(ctx, claims.UserID)
}

// ChangePassword verifies the old password unless the account never had one
// (third-party sign-up), then stores the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
			return util.ErrInvalidCredentials
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.UserRepo.Update(ctx, user)
}

// LoginWithProvider signs in the owner of a third-party profile, creating the
// account on first use.
func (s *AuthService) LoginWithProvider(ctx context.Context, provider string, profile *OAuthProfile) (*AuthResult, error) {
	if profile.Email == "" {
		return nil, model.NewValidationError("email", "provider did not return an email address")
	}

	user, err := s.UserRepo.FindByEmail(ctx, profile.Email)
	if err == nil {
		if !user.IsActive {
			return nil, util.ErrInvalidCredentials
		}
		return s.IssueToken(user)
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, err
	}

	user = &model.User{
		Name:          profile.Name,
		Username:      usernameFromEmail(profile.Email),
		Email:         profile.Email,
		Type:          model.AccountUser,
		ProfilePic:    profile.Picture,
		AuthType:      provider,
		EmailVerified: true,
		IsActive:      true,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	monitoring.Registrations.WithLabelValues(provider).Inc()
	logger.Log.Info("User registered via provider", zap.String("user_id", user.ID), zap.String("provider", provider))

	return s.IssueToken(user)
}

func usernameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	if len(local) > 32 {
		local = local[:32]
	}
	return local + "_" + model.GenerateUUID()[:6]
}

// SendVerification stores a fresh six-digit code for email and mails it.
func (s *AuthService) SendVerification(ctx context.Context, email string) error {
	if _, err := s.UserRepo.FindByEmail(ctx, email); err != nil {
		return err
	}

	code, err := verificationCode()
	if err != nil {
		return err
	}
	if err := s.Cache.SaveVerifyCode(ctx, email, code, s.Cfg.Cache.VerifyCodeTTL()); err != nil {
		return err
	}
	return s.Mail.SendVerificationCode(ctx, email, code)
}

// VerifyEmail checks code against the pending one for email. After
// MaxVerifyAttempts guesses the code is discarded and a new one must be sent.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	stored, err := s.Cache.VerifyCode(ctx, email)
	if err != nil {
		return err
	}
	if stored == "" {
		return util.ErrInvalidVerifyCode
	}

	attempts, err := s.Cache.CountVerifyAttempt(ctx, email, s.Cfg.Cache.VerifyCodeTTL())
	if err != nil {
		return err
	}
	if attempts > MaxVerifyAttempts {
		if err := s.Cache.DeleteVerifyCode(ctx, email); err != nil {
			logger.Log.Warn("Failed to delete verification code", zap.Error(err))
		}
		return util.ErrTooManyAttempts
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(code))) != 1 {
		return util.ErrInvalidVerifyCode
	}

	if err := s.UserRepo.MarkEmailVerified(ctx, email); err != nil {
		return err
	}
	if err := s.Cache.DeleteVerifyCode(ctx, email); err != nil {
		logger.Log.Warn("Failed to delete verification code", zap.Error(err))
	}
	return nil
}

func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339; empty means unset.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(util.DateFormat, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return nil, model.NewValidationError(field, "must be a date (YYYY-MM-DD)")
}
