package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/jwt"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/oauth"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/validation"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/repository"
)

type AuthService struct {
	userRepo *repository.UserRepository
	otp      *OTPService
	sender   VerificationSender
	cfg      *config.Config

	// 账号不存在或无本地密码时也比对一次，登录失败耗时与密码错误一致
	dummyHash       []byte
	comparePassword func(hash, password []byte) error
}

func NewAuthService(userRepo *repository.UserRepository, otp *OTPService, sender VerificationSender, cfg *config.Config) *AuthService {
	s := &AuthService{
		userRepo:        userRepo,
		otp:             otp,
		sender:          sender,
		cfg:             cfg,
		comparePassword: bcrypt.CompareHashAndPassword,
	}
	// 费用合法时不会出错
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("resumeforge-placeholder"), s.bcryptCost())
	return s
}

// Register 用户注册。验证码邮件发送失败不影响注册结果，用户可稍后重发
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	// 检查邮箱是否存在
	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	passwordStr := string(hashedPassword)

	user := &model.User{
		Email:             email,
		Name:              validation.SanitizeText(req.Name, 100),
		PasswordHash:      &passwordStr,
		Role:              model.RoleFree,
		OptimizationLimit: PlanLimit(s.cfg, model.RoleFree).Column(),
		EmailVerified:     false,
	}

	if err := s.userRepo.Create(user); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if exists, _ := s.userRepo.ExistsByEmail(email); exists {
			return nil, ErrEmailExists
		}
		return nil, apperr.Persistence(err)
	}

	resp := &dto.RegisterResponse{
		UserID: user.ID,
		Email:  user.Email,
	}
	if err := s.sendCode(ctx, email); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Int64("user_id", user.ID).Msg("registration verification email not sent")
		return resp, nil
	}
	resp.VerificationSent = true
	return resp, nil
}

// Login 邮箱密码登录，未验证邮箱的用户也可以登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.comparePassword(s.dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Persistence(err)
	}

	// 验证密码
	if !user.HasPassword() {
		_ = s.comparePassword(s.dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}
	if err := s.comparePassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user, false)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  BuildUserInfo(user),
	}, nil
}

// VerifyEmail 校验验证码并标记邮箱已验证，返回携带新状态的 token
func (s *AuthService) VerifyEmail(req *dto.VerifyEmailRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if err := validation.ValidateOTPCode(req.Code); err != nil {
		return nil, ErrInvalidVerifyCode
	}

	ok, err := s.otp.Verify(email, req.Code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidVerifyCode
	}

	if _, err := s.userRepo.MarkEmailVerifiedByEmail(email); err != nil {
		return nil, apperr.Persistence(err)
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerifyCode
		}
		return nil, apperr.Persistence(err)
	}

	token, err := s.IssueToken(user, false)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  BuildUserInfo(user),
	}, nil
}

// ResendOTP 重发验证码。邮箱不存在或已验证时静默成功，避免泄露账号是否存在
func (s *AuthService) ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error {
	email := strings.TrimSpace(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperr.Persistence(err)
	}
	if user.EmailVerified {
		return nil
	}

	if err := s.sendCode(ctx, email); err != nil {
		if apperr.KindOf(err) != apperr.KindUnknown {
			return err
		}
		logger.FromContext(ctx).Error().Err(err).Int64("user_id", user.ID).Msg("resend verification email failed")
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}
	return nil
}

// FederatedSignIn 第三方登录。首次出现的邮箱创建已验证的 FREE 用户，
// 已存在的用户只会把 email_verified 从 false 置为 true
func (s *AuthService) FederatedSignIn(profile *oauth.Profile) (*model.User, bool, error) {
	user, err := s.userRepo.GetByEmail(profile.Email)
	if err == nil {
		if !user.EmailVerified {
			if _, err := s.userRepo.MarkEmailVerified(user.ID); err != nil {
				return nil, false, apperr.Persistence(err)
			}
			user.EmailVerified = true
		}
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperr.Persistence(err)
	}

	user = &model.User{
		Email:             profile.Email,
		Name:              profile.Name,
		AvatarURL:         profile.AvatarURL,
		Role:              model.RoleFree,
		OptimizationLimit: PlanLimit(s.cfg, model.RoleFree).Column(),
		EmailVerified:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		// 同一邮箱并发回调，另一方已创建
		if existing, getErr := s.userRepo.GetByEmail(profile.Email); getErr == nil {
			return existing, false, nil
		}
		return nil, false, apperr.Persistence(err)
	}
	return user, true, nil
}

// IssueToken 根据用户当前状态签发 token
func (s *AuthService) IssueToken(user *model.User, isNew bool) (string, error) {
	token, err := jwt.GenerateToken(identityOf(user, isNew), s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// GetUserByID 根据 ID 获取用户
func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *AuthService) sendCode(ctx context.Context, email string) error {
	code, err := s.otp.IssueFresh(email)
	if err != nil {
		return err
	}
	return s.sender.SendVerificationCode(ctx, email, code)
}

func (s *AuthService) bcryptCost() int {
	cost := s.cfg.Auth.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func identityOf(user *model.User, isNew bool) jwt.Identity {
	return jwt.Identity{
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		AvatarURL:     user.AvatarURL,
		Role:          user.Role.String(),
		EmailVerified: user.EmailVerified,
		IsNewUser:     isNew,
	}
}

// BuildUserInfo 转换为返回给前端的用户信息
func BuildUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		AvatarURL:     user.AvatarURL,
		Role:          user.Role.String(),
		EmailVerified: user.EmailVerified,
	}
}
