package controller

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/service"
	"eventhub_backend/internal/util"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

type authService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	CheckUnique(ctx context.Context, username, email string) (*service.UniqueResult, error)
	Login(ctx context.Context, identifier, password string) (*service.AuthResult, error)
	Logout(ctx context.Context, claims *util.Claims) error
	CurrentUser(ctx context.Context, claims *util.Claims) (*model.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	LoginWithProvider(ctx context.Context, provider string, profile *service.OAuthProfile) (*service.AuthResult, error)
	SendVerification(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, code string) error
}

type oauthService interface {
	AuthCodeURL(provider, state string) (string, error)
	Exchange(ctx context.Context, provider, code string) (*service.OAuthProfile, error)
}

type AuthController struct {
	AuthService  authService
	OAuthService oauthService
	IsRelease    bool
}

func NewAuthController(authService authService, oauthService oauthService, isRelease bool) *AuthController {
	return &AuthController{
		AuthService:  authService,
		OAuthService: oauthService,
		IsRelease:    isRelease,
	}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterInput true "Account details"
// @Success 201 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response "Invalid input"
// @Failure 409 {object} util.Response "Username or email already taken"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterInput
	if !bindJSON(ctx, &req) {
		return
	}

	res, err := c.AuthService.Register(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, res)
}

// UniqueRequest carries the identifiers to check; at least one is required.
// swagger:model UniqueRequest
type UniqueRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// IsUsernameOrEmailUnique godoc
// @Summary Check whether a username or email is taken
// @Tags auth
// @Accept json
// @Produce json
// @Param body body UniqueRequest true "Identifiers"
// @Success 200 {object} util.Response{data=service.UniqueResult}
// @Failure 400 {object} util.Response
// @Router /register [put]
func (c *AuthController) IsUsernameOrEmailUnique(ctx *gin.Context) {
	var req UniqueRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" && strings.TrimSpace(req.Email) == "" {
		util.BadRequest(ctx, "username or email is required")
		return
	}

	res, err := c.AuthService.CheckUnique(ctx.Request.Context(), req.Username, req.Email)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, res)
}

// LoginRequest accepts either an email or a username.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Sign in with email or username
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	if strings.TrimSpace(identifier) == "" {
		util.BadRequest(ctx, "email or username is required")
		return
	}

	res, err := c.AuthService.Login(ctx.Request.Context(), identifier, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, res)
}

// ThirdPartyAuth godoc
// @Summary Sign in with Google or Facebook
// @Description Without code, redirects to the provider's consent page. With code, completes the flow.
// @Tags auth
// @Produce json
// @Param provider query string true "google or facebook"
// @Param code query string false "Authorization code"
// @Param state query string false "State echoed by the provider"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Success 307 "Redirect to the provider"
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /third-party-auth [get]
func (c *AuthController) ThirdPartyAuth(ctx *gin.Context) {
	provider := ctx.Query("provider")
	code := ctx.Query("code")

	if code == "" {
		state := model.GenerateUUID()
		url, err := c.OAuthService.AuthCodeURL(provider, state)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(oauthStateCookie, state, 600, "/", "", c.IsRelease, true)
		ctx.Redirect(http.StatusTemporaryRedirect, url)
		return
	}

	state, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != ctx.Query("state") {
		util.BadRequest(ctx, "invalid oauth state")
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", c.IsRelease, true)

	profile, err := c.OAuthService.Exchange(ctx.Request.Context(), provider, code)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	res, err := c.AuthService.LoginWithProvider(ctx.Request.Context(), provider, profile)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, res)
}

// ChangePasswordRequest is the body of PUT /edit-password.
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /edit-password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.AuthService.ChangePassword(ctx.Request.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"changed": true})
}

// SessionResponse describes the caller's session.
// swagger:model SessionResponse
type SessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *model.User `json:"user,omitempty"`
}

// Session godoc
// @Summary Describe the current session
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response{data=SessionResponse}
// @Router /session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Success(ctx, SessionResponse{})
		return
	}

	user, err := c.AuthService.CurrentUser(ctx.Request.Context(), claims)
	if err != nil {
		if util.IsNotFound(err) {
			util.Success(ctx, SessionResponse{})
			return
		}
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, SessionResponse{Authenticated: true, User: user})
}

// EmailVerifyRequest sends a code when Code is empty and checks it otherwise.
// swagger:model EmailVerifyRequest
type EmailVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code"`
}

// EmailVerify godoc
// @Summary Send or check an email verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body EmailVerifyRequest true "Email and optional code"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Invalid or expired code"
// @Failure 404 {object} util.Response "Unknown email"
// @Failure 429 {object} util.Response "Too many wrong codes"
// @Failure 503 {object} util.Response "Verification store unavailable"
// @Router /validate/email [post]
func (c *AuthController) EmailVerify(ctx *gin.Context) {
	var req EmailVerifyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if req.Code == "" {
		if err := c.AuthService.SendVerification(ctx.Request.Context(), req.Email); err != nil {
			util.HandleError(ctx, err)
			return
		}
		util.Success(ctx, gin.H{"sent": true})
		return
	}

	if err := c.AuthService.VerifyEmail(ctx.Request.Context(), req.Email, req.Code); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"verified": true})
}

// Logout godoc
// @Summary Revoke the caller's token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.AuthService.Logout(ctx.Request.Context(), claims); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"logged_out": true})
}
