package repository

import (
	"gorm.io/gorm"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// MarkEmailVerified 只会把 false 置为 true，返回是否发生了变更
func (r *UserRepository) MarkEmailVerified(id int64) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND email_verified = ?", id, false).
		Update("email_verified", true)
	return result.RowsAffected > 0, result.Error
}

// MarkEmailVerifiedByEmail 同 MarkEmailVerified，按邮箱定位
func (r *UserRepository) MarkEmailVerifiedByEmail(email string) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("email = ? AND email_verified = ?", email, false).
		Update("email_verified", true)
	return result.RowsAffected > 0, result.Error
}

// UpdatePlan 修改角色与月度上限，返回受影响行数
func (r *UserRepository) UpdatePlan(id int64, role model.Role, limit model.Limit) (int64, error) {
	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"role":               role,
		"optimization_limit": limit.Column(),
	})
	return result.RowsAffected, result.Error
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
