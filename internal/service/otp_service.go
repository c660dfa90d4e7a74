package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/repository"
)

const (
	otpMin           = 100000
	otpSpan          = 900000 // [100000, 999999]
	otpIssueAttempts = 10
)

// OTPService 邮箱验证码。同一邮箱可同时存在多个有效验证码，重发不会使旧码失效
type OTPService struct {
	otpRepo *repository.OtpRepository
	ttl     time.Duration
	now     func() time.Time
	random  io.Reader
}

func NewOTPService(otpRepo *repository.OtpRepository, cfg *config.Config) *OTPService {
	return &OTPService{
		otpRepo: otpRepo,
		ttl:     cfg.OTP.TTL(),
		now:     func() time.Time { return time.Now().UTC() },
		random:  rand.Reader,
	}
}

// Generate 均匀随机的 6 位数字
func (s *OTPService) Generate() (string, error) {
	n, err := rand.Int(s.random, big.NewInt(otpSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+otpMin), nil
}

// Issue 保存验证码，过期时间为 now + ttl
func (s *OTPService) Issue(email, code string) error {
	token := &model.OtpToken{
		Identifier: email,
		Token:      code,
		Expires:    s.now().Add(s.ttl),
	}
	if err := s.otpRepo.Create(token); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// IssueFresh 生成并保存一个该邮箱下尚未存在的验证码
func (s *OTPService) IssueFresh(email string) (string, error) {
	for i := 0; i < otpIssueAttempts; i++ {
		code, err := s.Generate()
		if err != nil {
			return "", err
		}
		exists, err := s.otpRepo.Exists(email, code)
		if err != nil {
			return "", apperr.Persistence(err)
		}
		if exists {
			continue
		}
		if err := s.Issue(email, code); err != nil {
			return "", err
		}
		return code, nil
	}
	return "", ErrOTPGeneration
}

// Verify 精确匹配即删除，无论是否过期；只有本次调用删除成功且未过期才返回 true
func (s *OTPService) Verify(email, code string) (bool, error) {
	token, err := s.otpRepo.Find(email, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperr.Persistence(err)
	}

	deleted, err := s.otpRepo.Delete(email, code)
	if err != nil {
		return false, apperr.Persistence(err)
	}
	if deleted == 0 {
		return false, nil
	}

	return !token.Expired(s.now()), nil
}

// CountExpired 统计已过期的验证码
func (s *OTPService) CountExpired(now time.Time) (int64, error) {
	return s.otpRepo.CountExpired(now)
}

// PruneExpired 批量清理已过期的验证码
func (s *OTPService) PruneExpired(now time.Time) (int64, error) {
	return s.otpRepo.DeleteExpired(now)
}
