package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/api/middleware"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/service"
)

type UsageHandler struct {
	quotaService *service.QuotaService
}

func NewUsageHandler(quotaService *service.QuotaService) *UsageHandler {
	return &UsageHandler{
		quotaService: quotaService,
	}
}

// Get 当前用户本月用量
// GET /api/v1/usage
func (h *UsageHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	usage, err := h.quotaService.Usage(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := &dto.UsageResponse{
		Unlimited:   usage.Unlimited,
		Role:        usage.Role.String(),
		Used:        usage.Used,
		PeriodStart: usage.PeriodStart.Format(time.RFC3339),
	}
	if !usage.Unlimited {
		remaining, limit := usage.Remaining, usage.Limit
		resp.Remaining = &remaining
		resp.Limit = &limit
	}

	response.Success(c, resp)
}
