package dto

import (
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/llm"
)

// OptimizeInput 已通过校验与清洗的优化请求
type OptimizeInput struct {
	FileName       string
	FileData       []byte
	MimeType       string
	JobDescription string
}

// OptimizeResponse 优化结果
type OptimizeResponse struct {
	ExtractedResumeText string           `json:"extracted_resume_text"`
	JobDescription      string           `json:"job_description"`
	Suggestions         *llm.Suggestions `json:"suggestions"`
}
