package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/llm"
)

// VerificationSender 投递验证码邮件
type VerificationSender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// TextExtractor 从上传的简历文件中提取纯文本
type TextExtractor interface {
	ExtractText(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// SuggestionGenerator 根据简历和职位描述生成修改建议
type SuggestionGenerator interface {
	Suggest(ctx context.Context, resumeText, jobDescription string) (*llm.Suggestions, error)
}
