package oauth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
)

const (
	ProviderGoogle = "google"
	ProviderGithub = "github"
)

var (
	ErrUnknownProvider = errors.New("unknown oauth provider")
	ErrNoEmail         = errors.New("oauth provider returned no email")
)

// Profile 第三方账号资料
type Profile struct {
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
}

type Provider interface {
	Name() string
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Profile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}

// Registry 已配置的 provider，ClientID 为空的不注册
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(cfg *config.OAuthConfig) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	if cfg.Google.ClientID != "" {
		r.Register(NewGoogleOAuth(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURI))
	}
	if cfg.Github.ClientID != "" {
		r.Register(NewGithubOAuth(cfg.Github.ClientID, cfg.Github.ClientSecret, cfg.Github.RedirectURI))
	}
	return r
}

func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

// FetchProfile 用授权码换取 token 并拉取资料
func FetchProfile(ctx context.Context, p Provider, code string) (*Profile, error) {
	token, err := p.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	profile, err := p.Profile(ctx, token)
	if err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, ErrNoEmail
	}
	return profile, nil
}
