package model

import (
	"time"
)

// OtpToken 邮箱验证码，(identifier, token) 联合唯一
type OtpToken struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Identifier string    `gorm:"size:191;not null;uniqueIndex:idx_otp_identifier_token" json:"identifier"`
	Token      string    `gorm:"size:16;not null;uniqueIndex:idx_otp_identifier_token" json:"-"`
	Expires    time.Time `gorm:"not null;index" json:"expires"`
	CreatedAt  time.Time `json:"created_at"`
}

func (OtpToken) TableName() string {
	return "otp_tokens"
}

// Expired 在 now 时刻是否已过期
func (t *OtpToken) Expired(now time.Time) bool {
	return t.Expires.Before(now)
}
