package service

import (
	"context"
	"errors"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/oauth"
)

// OAuthService 第三方登录，state 存放在 Redis 中且只能使用一次
type OAuthService struct {
	registry *oauth.Registry
	states   *oauth.StateStore
	auth     *AuthService
}

func NewOAuthService(registry *oauth.Registry, states *oauth.StateStore, auth *AuthService) *OAuthService {
	return &OAuthService{
		registry: registry,
		states:   states,
		auth:     auth,
	}
}

// AuthURL 生成跳转到第三方授权页的地址
func (s *OAuthService) AuthURL(ctx context.Context, provider string) (string, error) {
	p, err := s.registry.Get(provider)
	if err != nil {
		return "", ErrUnknownProvider
	}
	state, err := s.states.GenerateState(ctx, provider)
	if err != nil {
		return "", apperr.Persistence(err)
	}
	return p.AuthURL(state), nil
}

// Callback 校验 state，换取第三方资料并登录
func (s *OAuthService) Callback(ctx context.Context, provider, state, code string) (*dto.SessionResponse, error) {
	p, err := s.registry.Get(provider)
	if err != nil {
		return nil, ErrUnknownProvider
	}

	if err := s.states.ValidateState(ctx, provider, state); err != nil {
		if errors.Is(err, oauth.ErrInvalidState) || state == "" {
			return nil, ErrInvalidOAuthState
		}
		return nil, apperr.Persistence(err)
	}

	if code == "" {
		return nil, apperr.Validation("code", "Missing authorization code")
	}

	profile, err := oauth.FetchProfile(ctx, p, code)
	if err != nil {
		if errors.Is(err, oauth.ErrNoEmail) {
			return nil, apperr.New(apperr.KindAuthentication, "Your account has no verified email address")
		}
		logger.FromContext(ctx).Warn().Err(err).Str("provider", provider).Msg("oauth profile fetch failed")
		return nil, apperr.Upstream("oauth provider request failed", err)
	}

	user, isNew, err := s.auth.FederatedSignIn(profile)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.IssueToken(user, isNew)
	if err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		User:      BuildUserInfo(user),
		IsNewUser: isNew,
		Token:     token,
	}, nil
}
