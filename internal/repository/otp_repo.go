package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
)

type OtpRepository struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) *OtpRepository {
	return &OtpRepository{db: db}
}

func (r *OtpRepository) Create(token *model.OtpToken) error {
	return r.db.Create(token).Error
}

// Find 精确匹配 (identifier, token)
func (r *OtpRepository) Find(identifier, token string) (*model.OtpToken, error) {
	var t model.OtpToken
	err := r.db.Where("identifier = ? AND token = ?", identifier, token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *OtpRepository) Exists(identifier, token string) (bool, error) {
	var count int64
	err := r.db.Model(&model.OtpToken{}).
		Where("identifier = ? AND token = ?", identifier, token).
		Count(&count).Error
	return count > 0, err
}

// Delete 条件删除，返回本次调用实际删除的行数。
// 并发删除同一行时只有一个调用会得到 1。
func (r *OtpRepository) Delete(identifier, token string) (int64, error) {
	result := r.db.Where("identifier = ? AND token = ?", identifier, token).Delete(&model.OtpToken{})
	return result.RowsAffected, result.Error
}

func (r *OtpRepository) CountByIdentifier(identifier string) (int64, error) {
	var count int64
	err := r.db.Model(&model.OtpToken{}).Where("identifier = ?", identifier).Count(&count).Error
	return count, err
}

func (r *OtpRepository) CountExpired(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.OtpToken{}).Where("expires < ?", now).Count(&count).Error
	return count, err
}

func (r *OtpRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires < ?", now).Delete(&model.OtpToken{})
	return result.RowsAffected, result.Error
}
