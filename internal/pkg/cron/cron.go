package cron

import (
	"sync"
	"time"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
)

// Sweeper 可定期清理过期状态的组件
type Sweeper interface {
	Sweep(now time.Time) int
}

type Service struct {
	sweeper  Sweeper
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewService(sweeper Sweeper, interval time.Duration, log *logger.Logger) *Service {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		sweeper:  sweeper,
		interval: interval,
		log:      log,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runSweep()
	s.log.Info().Dur("interval", s.interval).Msg("rate limit sweeper started")
}

// Stop 停止定时任务，可重复调用
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.log.Info().Msg("rate limit sweeper stopped")
	})
}

// runSweep 按固定间隔清理过期限流窗口
func (s *Service) runSweep() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunNow()
		}
	}
}

// RunNow 立即执行一次清理（用于测试或手动触发）
func (s *Service) RunNow() int {
	if s.sweeper == nil {
		return 0
	}
	removed := s.sweeper.Sweep(s.now())
	if removed > 0 {
		s.log.Debug().Int("removed", removed).Msg("expired rate limit windows swept")
	}
	return removed
}
