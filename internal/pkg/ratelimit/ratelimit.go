// Package ratelimit 固定窗口限流。
//
// 每个 key 一个窗口：首次请求或窗口过期时开新窗口并计数为 1，
// 计数未达上限时递增放行，达到上限后拒绝且不再递增。
// 默认的 MemoryStore 只在单进程内生效，多实例部署时实际上限为 MaxRequests 乘以实例数；
// 需要共享窗口时改用 RedisStore。
package ratelimit

import (
	"context"
	"time"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
)

type Config struct {
	MaxRequests int
	Window      time.Duration
}

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store 限流状态存储，Hit 对 key 计一次请求并返回判定结果
type Store interface {
	Hit(ctx context.Context, key string, cfg Config, now time.Time) (Result, error)
}

type Limiter struct {
	store Store
	now   func() time.Time
}

func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// SetClock 替换时钟，测试用
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

// Check 对 identifier 计数。MaxRequests 非正时一律拒绝
func (l *Limiter) Check(ctx context.Context, identifier string, cfg Config) (Result, error) {
	now := l.now()
	if cfg.MaxRequests <= 0 {
		return Result{Allowed: false, Limit: 0, Remaining: 0, ResetAt: now.Add(cfg.Window)}, nil
	}
	return l.store.Hit(ctx, identifier, cfg, now)
}

// Presets 各接口的限流参数
type Presets struct {
	Register  Config
	Optimize  Config
	ResendOTP Config
	General   Config
}

func DefaultPresets() Presets {
	return Presets{
		Register:  Config{MaxRequests: 5, Window: time.Minute},
		Optimize:  Config{MaxRequests: 10, Window: time.Minute},
		ResendOTP: Config{MaxRequests: 5, Window: 10 * time.Minute},
		General:   Config{MaxRequests: 20, Window: time.Minute},
	}
}

// PresetsFromConfig 用配置覆盖默认值，未配置的项保持默认
func PresetsFromConfig(cfg *config.RateLimitConfig) Presets {
	p := DefaultPresets()
	if cfg == nil {
		return p
	}
	override(&p.Register, cfg.Register)
	override(&p.Optimize, cfg.Optimize)
	override(&p.ResendOTP, cfg.ResendOTP)
	override(&p.General, cfg.General)
	return p
}

func override(dst *Config, src config.RateLimitPresetConfig) {
	if src.MaxRequests > 0 {
		dst.MaxRequests = src.MaxRequests
	}
	if src.Window > 0 {
		dst.Window = src.Window
	}
}
