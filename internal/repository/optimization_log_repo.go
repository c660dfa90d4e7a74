package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
)

type OptimizationLogRepository struct {
	db *gorm.DB
}

func NewOptimizationLogRepository(db *gorm.DB) *OptimizationLogRepository {
	return &OptimizationLogRepository{db: db}
}

func (r *OptimizationLogRepository) Create(log *model.OptimizationLog) error {
	return r.db.Create(log).Error
}

// CountSince 统计 since（含）之后的记录数
func (r *OptimizationLogRepository) CountSince(userID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.OptimizationLog{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *OptimizationLogRepository) CountBefore(cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.OptimizationLog{}).Where("created_at < ?", cutoff).Count(&count).Error
	return count, err
}

// DeleteBefore 批量清理历史记录
func (r *OptimizationLogRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.OptimizationLog{})
	return result.RowsAffected, result.Error
}
