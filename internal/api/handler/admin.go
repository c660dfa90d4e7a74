package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// UpdatePlan 修改用户套餐
// PUT /api/v1/admin/users/:id/plan
func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.FieldError(c, "id", "Invalid user id")
		return
	}

	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.adminService.UpdatePlan(id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Plan updated", info)
}
