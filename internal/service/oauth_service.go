package service

import (
	"context"
	"encoding/json"
	"eventhub_backend/internal/config"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/util"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email,picture.type(large)"
)

// OAuthProfile is the subset of a provider profile used to sign a user in.
type OAuthProfile struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

type OAuthProvider struct {
	Config      *oauth2.Config
	UserInfoURL string
}

// OAuthService runs the authorization code flow against Google and Facebook.
type OAuthService struct {
	providers map[string]*OAuthProvider
}

func NewOAuthService(cfg config.OAuthConfig) *OAuthService {
	s := &OAuthService{providers: map[string]*OAuthProvider{}}

	if cfg.Google.ClientID != "" {
		s.Register(model.AuthGoogle, &OAuthProvider{
			Config: &oauth2.Config{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
				RedirectURL:  cfg.Google.RedirectURL,
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
			UserInfoURL: googleUserInfoURL,
		})
	}

	if cfg.Facebook.ClientID != "" {
		s.Register(model.AuthFacebook, &OAuthProvider{
			Config: &oauth2.Config{
				ClientID:     cfg.Facebook.ClientID,
				ClientSecret: cfg.Facebook.ClientSecret,
				RedirectURL:  cfg.Facebook.RedirectURL,
				Scopes:       []string{"email", "public_profile"},
				Endpoint:     facebook.Endpoint,
			},
			UserInfoURL: facebookUserInfoURL,
		})
	}

	return s
}

func (s *OAuthService) Register(name string, p *OAuthProvider) {
	s.providers[name] = p
}

func (s *OAuthService) provider(name string) (*OAuthProvider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, util.ErrUnknownProvider
	}
	return p, nil
}

func (s *OAuthService) AuthCodeURL(name, state string) (string, error) {
	p, err := s.provider(name)
	if err != nil {
		return "", err
	}
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange trades the authorization code for a token and fetches the profile.
func (s *OAuthService) Exchange(ctx context.Context, name, code string) (*OAuthProfile, error) {
	p, err := s.provider(name)
	if err != nil {
		return nil, err
	}

	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %v", util.ErrInvalidCredentials, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: profile request returned %d: %s", util.ErrInvalidCredentials, resp.StatusCode, body)
	}

	return decodeProfile(resp.Body)
}

// decodeProfile reads Google's flat picture field and Facebook's nested
// picture.data.url alike.
func decodeProfile(r io.Reader) (*OAuthProfile, error) {
	var raw struct {
		ID      string          `json:"id"`
		Email   string          `json:"email"`
		Name    string          `json:"name"`
		Picture json.RawMessage `json:"picture"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	profile := &OAuthProfile{ID: raw.ID, Email: raw.Email, Name: raw.Name}

	if len(raw.Picture) > 0 {
		var flat string
		if err := json.Unmarshal(raw.Picture, &flat); err == nil {
			profile.Picture = flat
		} else {
			var nested struct {
				Data struct {
					URL string `json:"url"`
				} `json:"data"`
			}
			if err := json.Unmarshal(raw.Picture, &nested); err == nil {
				profile.Picture = nested.Data.URL
			}
		}
	}

	return profile, nil
}
