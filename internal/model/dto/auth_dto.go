package dto

// RegisterRequest 注册请求，格式与强度校验在 service 层完成
type RegisterRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse 注册响应，VerificationSent 为 false 时用户可稍后重发验证码
type RegisterResponse struct {
	UserID           int64  `json:"user_id"`
	Email            string `json:"email"`
	VerificationSent bool   `json:"verification_sent"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// VerifyEmailRequest 邮箱验证请求
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// ResendOTPRequest 重发验证码请求
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

// UserInfo 用户信息（返回给前端）
type UserInfo struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	AvatarURL     string `json:"avatar_url"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// SessionResponse 当前会话。IsNewUser 为 true 时 Token 是清除了该标记的新 token
type SessionResponse struct {
	User      *UserInfo `json:"user"`
	IsNewUser bool      `json:"is_new_user"`
	Token     string    `json:"token,omitempty"`
}

// OAuthURLResponse 第三方登录跳转地址
type OAuthURLResponse struct {
	URL string `json:"url"`
}
