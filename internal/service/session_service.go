package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/jwt"
)

// SessionService 读取与刷新会话
type SessionService struct {
	auth *AuthService
}

func NewSessionService(auth *AuthService) *SessionService {
	return &SessionService{auth: auth}
}

// Session 返回 token 中的会话信息，不访问存储。
// 带有 is_new_user 标记时附带一个清除了该标记的新 token
func (s *SessionService) Session(claims *jwt.Claims) (*dto.SessionResponse, error) {
	id := claims.Identity()
	resp := &dto.SessionResponse{
		User: &dto.UserInfo{
			ID:            id.UserID,
			Email:         id.Email,
			Name:          id.Name,
			AvatarURL:     id.AvatarURL,
			Role:          id.Role,
			EmailVerified: id.EmailVerified,
		},
		IsNewUser: id.IsNewUser,
	}
	if !id.IsNewUser {
		return resp, nil
	}

	id.IsNewUser = false
	token, err := jwt.GenerateToken(id, s.auth.cfg.JWT.Secret, s.auth.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}
	resp.Token = token
	return resp, nil
}

// Refresh 从存储重新读取用户状态并签发新 token
func (s *SessionService) Refresh(userID int64) (*dto.LoginResponse, error) {
	user, err := s.auth.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Persistence(err)
	}

	token, err := s.auth.IssueToken(user, false)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  BuildUserInfo(user),
	}, nil
}
