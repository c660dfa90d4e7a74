package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/api/middleware"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/validation"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/service"
)

const (
	// multipart 包装、job_description 等字段的额外余量
	formOverhead = 1 << 20
	formMemory   = 32 << 20
)

const fileTooLargeMessage = "File size exceeds the maximum allowed size"

type OptimizeHandler struct {
	optimizeService *service.OptimizeService
	cfg             config.UploadConfig
}

func NewOptimizeHandler(optimizeService *service.OptimizeService, cfg config.UploadConfig) *OptimizeHandler {
	return &OptimizeHandler{
		optimizeService: optimizeService,
		cfg:             cfg,
	}
}

// Optimize 上传简历和职位描述，返回修改建议
// POST /api/v1/optimize
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	resp, err := h.optimizeService.Optimize(c.Request.Context(), userID, input)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, resp)
}

// bindInput 读取并校验表单，失败时已写入 400 响应
func (h *OptimizeHandler) bindInput(c *gin.Context) (*dto.OptimizeInput, bool) {
	if h.cfg.MaxSize > 0 {
		limit := h.cfg.MaxSize + formOverhead
		if c.Request.ContentLength > limit {
			response.FieldError(c, "resume_file", fileTooLargeMessage)
			return nil, false
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	// 先完整解析表单，才能区分超限和缺少文件
	if err := c.Request.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FieldError(c, "resume_file", fileTooLargeMessage)
			return nil, false
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			response.ParamError(c, "Invalid multipart form")
			return nil, false
		}
	}

	file, header, err := c.Request.FormFile("resume_file")
	if err != nil {
		response.FieldError(c, "resume_file", "Resume file is required")
		return nil, false
	}
	defer file.Close()

	if h.cfg.MaxSize > 0 && header.Size > h.cfg.MaxSize {
		response.FieldError(c, "resume_file", fileTooLargeMessage)
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.FieldError(c, "resume_file", "Could not read the uploaded file")
		return nil, false
	}

	mimeType, err := validation.DetectFileType(data, h.cfg.AllowedTypes, h.cfg.MaxSize)
	if err != nil {
		handleError(c, err)
		return nil, false
	}

	maxLen := h.cfg.MaxJobDescriptionLen
	if maxLen <= 0 {
		maxLen = validation.MaxTextLength
	}
	jobDescription := validation.SanitizeText(c.PostForm("job_description"), maxLen)
	if jobDescription == "" {
		response.FieldError(c, "job_description", "Job description is required")
		return nil, false
	}

	return &dto.OptimizeInput{
		FileName:       header.Filename,
		FileData:       data,
		MimeType:       mimeType,
		JobDescription: jobDescription,
	}, true
}
