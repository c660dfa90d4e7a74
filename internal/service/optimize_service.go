package service

import (
	"context"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model/dto"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
)

// OptimizeService 简历优化：配额检查、文本提取、LLM 建议、记录用量。
// 任何下游失败都不会写入使用记录。
type OptimizeService struct {
	quota     *QuotaService
	extractor TextExtractor
	generator SuggestionGenerator
}

func NewOptimizeService(quota *QuotaService, extractor TextExtractor, generator SuggestionGenerator) *OptimizeService {
	return &OptimizeService{
		quota:     quota,
		extractor: extractor,
		generator: generator,
	}
}

// Optimize 执行一次优化，input 须已完成校验与清洗
func (s *OptimizeService) Optimize(ctx context.Context, userID int64, input *dto.OptimizeInput) (*dto.OptimizeResponse, error) {
	ok, err := s.quota.CanProceed(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuotaExceeded
	}

	resumeText, err := s.extractor.ExtractText(ctx, input.FileName, input.MimeType, input.FileData)
	if err != nil {
		return nil, apperr.Upstream("text extraction failed", err)
	}

	suggestions, err := s.generator.Suggest(ctx, resumeText, input.JobDescription)
	if err != nil {
		return nil, apperr.Upstream("suggestion generation failed", err)
	}

	if err := s.quota.Record(userID); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", userID).
		Int("changes", len(suggestions.Changes)).
		Msg("resume optimized")

	return &dto.OptimizeResponse{
		ExtractedResumeText: resumeText,
		JobDescription:      input.JobDescription,
		Suggestions:         suggestions,
	}, nil
}
