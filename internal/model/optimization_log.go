package model

import (
	"time"
)

// OptimizationLog 一次成功的简历优化记录，只追加不修改
type OptimizationLog struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_optlog_user_created" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;index:idx_optlog_user_created" json:"created_at"`
}

func (OptimizationLog) TableName() string {
	return "optimization_logs"
}
