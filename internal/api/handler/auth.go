package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/api/middleware"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/ratelimit"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	limiter     *ratelimit.Limiter
	resendLimit ratelimit.Config
}

func NewAuthHandler(authService *service.AuthService, limiter *ratelimit.Limiter, presets ratelimit.Presets) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limiter:     limiter,
		resendLimit: presets.ResendOTP,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	message := "Registration successful. Please check your email for the verification code."
	if !resp.VerificationSent {
		message = "Registration successful, but we could not send the verification email. Please request a new code."
	}
	response.Created(c, message, resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Signed in", resp)
}

// VerifyEmail 验证邮箱
// POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.VerifyEmail(&req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Email verified successfully", resp)
}

// ResendOTP 重发验证码，按邮箱限流
// POST /api/v1/auth/resend-otp
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	key := "resend_otp:" + strings.ToLower(strings.TrimSpace(req.Email))
	if !middleware.Allow(c, h.limiter, key, h.resendLimit) {
		return
	}

	if err := h.authService.ResendOTP(c.Request.Context(), &req); err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "If the account exists and is not yet verified, a new code has been sent", nil)
}

// handleError 业务错误统一出口
func handleError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrEmailDelivery) {
		response.ServerError(c, "Failed to send verification email. Please try again later.")
		return
	}
	response.FromError(c, err)
}
