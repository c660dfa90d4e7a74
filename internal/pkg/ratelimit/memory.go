package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore 进程内存储，互斥锁保证同一 key 的判定串行
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string]*window)}
}

func (s *MemoryStore) Hit(_ context.Context, key string, cfg Config, now time.Time) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(cfg.Window)}
		s.windows[key] = w
		return Result{Allowed: true, Limit: cfg.MaxRequests, Remaining: cfg.MaxRequests - 1, ResetAt: w.resetAt}, nil
	}

	if w.count < cfg.MaxRequests {
		w.count++
		return Result{Allowed: true, Limit: cfg.MaxRequests, Remaining: cfg.MaxRequests - w.count, ResetAt: w.resetAt}, nil
	}

	return Result{Allowed: false, Limit: cfg.MaxRequests, Remaining: 0, ResetAt: w.resetAt}, nil
}

// Sweep 清理窗口已过期的 key，返回清理数量
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, w := range s.windows {
		if w.resetAt.Before(now) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

// Len 当前跟踪的 key 数量
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
