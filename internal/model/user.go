package model

import (
	"time"
)

type User struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Name              string    `gorm:"size:100" json:"name"`
	AvatarURL         string    `gorm:"size:500" json:"avatar_url"`
	PasswordHash      *string   `gorm:"size:255" json:"-"`
	Role              Role      `gorm:"size:20;not null;default:FREE" json:"role"`
	OptimizationLimit *int64    `gorm:"column:optimization_limit" json:"-"`
	EmailVerified     bool      `gorm:"default:false" json:"email_verified"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasPassword 是否设置了本地密码（仅第三方登录的账号为 false）
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Limit 月度上限，列为 NULL 时不限量
func (u *User) Limit() Limit {
	return LimitFromColumn(u.OptimizationLimit)
}

func (u *User) SetLimit(l Limit) {
	u.OptimizationLimit = l.Column()
}
