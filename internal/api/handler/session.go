package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/api/middleware"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/service"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Get 当前会话
// GET /api/v1/auth/session
func (h *SessionHandler) Get(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	resp, err := h.sessionService.Session(claims)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// Refresh 从存储重新读取用户状态并签发新 token
// POST /api/v1/auth/session/refresh
func (h *SessionHandler) Refresh(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	resp, err := h.sessionService.Refresh(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}
