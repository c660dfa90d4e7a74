package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/repository"
)

// Allowance 剩余额度，Unlimited 时 Remaining 无意义
type Allowance struct {
	Unlimited bool
	Remaining int
}

// Usage 本月用量明细
type Usage struct {
	Role        model.Role
	Unlimited   bool
	Limit       int
	Used        int
	Remaining   int
	PeriodStart time.Time
}

// QuotaService 按自然月（UTC）统计优化次数。
// 检查与记录之间不加锁，并发请求可能略微超出上限。
type QuotaService struct {
	userRepo *repository.UserRepository
	logRepo  *repository.OptimizationLogRepository
	now      func() time.Time
}

func NewQuotaService(userRepo *repository.UserRepository, logRepo *repository.OptimizationLogRepository) *QuotaService {
	return &QuotaService{
		userRepo: userRepo,
		logRepo:  logRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// MonthStart 返回 t 所在月份第一天 00:00 UTC
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PlanLimit 角色对应的默认月度上限
func PlanLimit(cfg *config.Config, role model.Role) model.Limit {
	var plan config.PlanConfig
	switch role {
	case model.RoleAdmin:
		return model.Unlimited()
	case model.RolePremium:
		plan = cfg.Plans.Premium
	default:
		plan = cfg.Plans.Free
	}
	if plan.Unlimited {
		return model.Unlimited()
	}
	return model.Capped(plan.MonthlyLimit)
}

func unlimitedFor(user *model.User) bool {
	return user.Role == model.RoleAdmin || user.Limit().IsUnlimited()
}

// CanProceed 是否还能执行一次优化，用户不存在时返回 false
func (s *QuotaService) CanProceed(userID int64) (bool, error) {
	a, err := s.Remaining(userID)
	if err != nil {
		return false, err
	}
	return a.Unlimited || a.Remaining > 0, nil
}

// Remaining 剩余额度，用户不存在时返回 0
func (s *QuotaService) Remaining(userID int64) (Allowance, error) {
	usage, err := s.Usage(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Allowance{}, nil
		}
		return Allowance{}, err
	}
	return Allowance{Unlimited: usage.Unlimited, Remaining: usage.Remaining}, nil
}

// Usage 本月用量
func (s *QuotaService) Usage(userID int64) (*Usage, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Persistence(err)
	}

	start := MonthStart(s.now())
	count, err := s.logRepo.CountSince(userID, start)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	usage := &Usage{
		Role:        user.Role,
		Used:        int(count),
		PeriodStart: start,
	}
	if unlimitedFor(user) {
		usage.Unlimited = true
		return usage, nil
	}

	limit, _ := user.Limit().Cap()
	usage.Limit = limit
	usage.Remaining = limit - usage.Used
	if usage.Remaining < 0 {
		usage.Remaining = 0
	}
	return usage, nil
}

// Record 记录一次成功的优化
func (s *QuotaService) Record(userID int64) error {
	log := &model.OptimizationLog{
		UserID:    userID,
		CreatedAt: s.now(),
	}
	if err := s.logRepo.Create(log); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}
