package usecase

import (
	"context"
	"time"

	"github.com/n3xa/n3xa/internal/ports"
	"github.com/n3xa/n3xa/internal/service/logger"
)

// SummaryUseCase backs the summarizer service. It asks the LLM when one is
// configured and renders the fixed template otherwise or on failure, so
// Summarize never fails.
type SummaryUseCase struct {
	llm    ports.CompletionProvider
	logger logger.Logger
}

// NewSummaryUseCase creates the use case; llm may be nil
func NewSummaryUseCase(llm ports.CompletionProvider, log logger.Logger) *SummaryUseCase {
	return &SummaryUseCase{
		llm:    llm,
		logger: log.WithFields(map[string]interface{}{"component": "summary"}),
	}
}

func (uc *SummaryUseCase) Summarize(ctx context.Context, req ports.SummaryRequest) (string, error) {
	if uc.llm == nil {
		return templateSummary(req), nil
	}

	start := time.Now()
	summary, err := uc.llm.Complete(ctx, summarySystemPrompt, summaryUserPrompt(req))
	if err != nil {
		uc.logger.Warn(ctx, "LLM summary failed, using template", map[string]interface{}{
			"provider": uc.llm.Provider(),
			"error":    err.Error(),
		})
		return templateSummary(req), nil
	}

	logger.LogPerformance(ctx, uc.logger, "llm_summary", time.Since(start), map[string]interface{}{
		"provider": uc.llm.Provider(),
	})
	return summary, nil
}

// Provider names the backend that produces summaries
func (uc *SummaryUseCase) Provider() string {
	if uc.llm == nil {
		return "template"
	}
	return uc.llm.Provider()
}
