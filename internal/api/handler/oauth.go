package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/service"
)

type OAuthHandler struct {
	oauthService *service.OAuthService
}

func NewOAuthHandler(oauthService *service.OAuthService) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
	}
}

// Authorize 跳转到第三方授权页，?format=json 时返回地址而不跳转
// GET /api/v1/auth/oauth/:provider
func (h *OAuthHandler) Authorize(c *gin.Context) {
	url, err := h.oauthService.AuthURL(c.Request.Context(), c.Param("provider"))
	if err != nil {
		handleError(c, err)
		return
	}

	if c.Query("format") == "json" {
		response.Success(c, &dto.OAuthURLResponse{URL: url})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// Callback 第三方授权回调
// GET /api/v1/auth/oauth/:provider/callback
func (h *OAuthHandler) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		response.AuthError(c, "Sign-in was cancelled or denied")
		return
	}

	resp, err := h.oauthService.Callback(c.Request.Context(), c.Param("provider"), c.Query("state"), c.Query("code"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Signed in", resp)
}
