package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
)

var seq int64

// TestPassword 默认测试用户的明文密码
const TestPassword = "Abc12345!"

var testPasswordHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}()

// TestUser 创建测试用户，默认已验证的 FREE 用户，上限 3
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := atomic.AddInt64(&seq, 1)
	hash := testPasswordHash
	user := &model.User{
		Email:             fmt.Sprintf("test_%d_%d@example.com", time.Now().UnixNano(), n),
		Name:              fmt.Sprintf("Test User %d", n),
		PasswordHash:      &hash,
		Role:              model.RoleFree,
		OptimizationLimit: model.Capped(3).Column(),
		EmailVerified:     true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithRole 设置角色
func WithRole(role model.Role) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// WithLimit 设置月度上限
func WithLimit(limit model.Limit) func(*model.User) {
	return func(u *model.User) {
		u.SetLimit(limit)
	}
}

// WithVerified 设置邮箱验证状态
func WithVerified(verified bool) func(*model.User) {
	return func(u *model.User) {
		u.EmailVerified = verified
	}
}

// WithPassword 设置密码，空字符串表示仅第三方登录
func WithPassword(password string) func(*model.User) {
	return func(u *model.User) {
		if password == "" {
			u.PasswordHash = nil
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		s := string(hash)
		u.PasswordHash = &s
	}
}

// TestOptimizationLog 创建一条使用记录
func TestOptimizationLog(t *testing.T, db *gorm.DB, userID int64, createdAt time.Time) *model.OptimizationLog {
	t.Helper()

	log := &model.OptimizationLog{
		UserID:    userID,
		CreatedAt: createdAt.UTC(),
	}

	if err := db.Create(log).Error; err != nil {
		t.Fatalf("Failed to create test optimization log: %v", err)
	}

	return log
}

// TestOtpToken 创建验证码
func TestOtpToken(t *testing.T, db *gorm.DB, identifier, token string, expires time.Time) *model.OtpToken {
	t.Helper()

	otp := &model.OtpToken{
		Identifier: identifier,
		Token:      token,
		Expires:    expires.UTC(),
	}

	if err := db.Create(otp).Error; err != nil {
		t.Fatalf("Failed to create test otp token: %v", err)
	}

	return otp
}
