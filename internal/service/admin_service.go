package service

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/validation"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/repository"
)

type AdminService struct {
	userRepo   *repository.UserRepository
	bcryptCost int
}

func NewAdminService(userRepo *repository.UserRepository, bcryptCost int) *AdminService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// UpdatePlan 修改用户角色和月度上限，MonthlyLimit 为 nil 表示不限量
func (s *AdminService) UpdatePlan(userID int64, req *dto.UpdatePlanRequest) (*dto.UserInfo, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, apperr.Validation("role", "Invalid role")
	}

	limit := model.Unlimited()
	if req.MonthlyLimit != nil {
		if *req.MonthlyLimit < 0 {
			return nil, apperr.Validation("monthly_limit", "Monthly limit must not be negative")
		}
		limit = model.Capped(*req.MonthlyLimit)
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanUserNotFound
		}
		return nil, apperr.Persistence(err)
	}

	if _, err := s.userRepo.UpdatePlan(userID, role, limit); err != nil {
		return nil, apperr.Persistence(err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return BuildUserInfo(user), nil
}

// EnsureAdmin 创建管理员，已存在时提升为不限量、已验证的管理员并重置密码。
// 返回 true 表示新建
func (s *AdminService) EnsureAdmin(email, password, name string) (*model.User, bool, error) {
	email = strings.TrimSpace(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, false, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}
	hash := string(hashed)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperr.Persistence(err)
	}

	created := user == nil
	if created {
		user = &model.User{Email: email}
	}
	user.PasswordHash = &hash
	user.Role = model.RoleAdmin
	user.SetLimit(model.Unlimited())
	user.EmailVerified = true
	if name != "" {
		user.Name = name
	}

	if created {
		err = s.userRepo.Create(user)
	} else {
		err = s.userRepo.Update(user)
	}
	if err != nil {
		return nil, false, apperr.Persistence(err)
	}
	return user, created, nil
}
