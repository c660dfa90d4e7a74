package model

import (
	"fmt"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RolePremium Role = "PREMIUM"
	RoleFree    Role = "FREE"
)

// ParseRole 解析角色字符串，大小写敏感
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RolePremium, RoleFree:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}

// Limit 月度优化次数上限：Unlimited 或 Capped(n)。
// 零值为 Capped(0)，不会被误当作不限量。
type Limit struct {
	unlimited bool
	n         int
}

// Unlimited 不限量
func Unlimited() Limit {
	return Limit{unlimited: true}
}

// Capped 固定上限，负数按 0 处理
func Capped(n int) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{n: n}
}

func (l Limit) IsUnlimited() bool {
	return l.unlimited
}

// Cap 返回上限；Unlimited 时 ok 为 false
func (l Limit) Cap() (n int, ok bool) {
	if l.unlimited {
		return 0, false
	}
	return l.n, true
}

func (l Limit) String() string {
	if l.unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.n)
}

// LimitFromColumn 由可空列还原，NULL 表示不限量
func LimitFromColumn(v *int64) Limit {
	if v == nil {
		return Unlimited()
	}
	return Capped(int(*v))
}

// Column 转为可空列的值
func (l Limit) Column() *int64 {
	if l.unlimited {
		return nil
	}
	n := int64(l.n)
	return &n
}
