package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/coursecal/internal/providers"
	"github.com/jackzampolin/coursecal/internal/types"
)

// Orchestrator runs the extraction engines and isolates their failures
// from each other and from the caller. No exception-like failure crosses
// this boundary: every path yields a well-formed ExtractionResult.
type Orchestrator struct {
	llm     *LLMExtractor
	pattern *PatternExtractor
	logger  *slog.Logger
}

// NewOrchestrator wires both engines.
func NewOrchestrator(llm *LLMExtractor, pattern *PatternExtractor, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{llm: llm, pattern: pattern, logger: logger}
}

// ExtractLLM runs the completion-backed engine.
func (o *Orchestrator) ExtractLLM(ctx context.Context, text string, hint types.CourseHint) types.ExtractionResult {
	return o.safeExtract(ctx, o.llm, text, hint)
}

// ExtractPattern runs the rule-based engine.
func (o *Orchestrator) ExtractPattern(ctx context.Context, text string, hint types.CourseHint) types.ExtractionResult {
	return o.safeExtract(ctx, o.pattern, text, hint)
}

// Status reports completion-service availability to the caller.
func (o *Orchestrator) Status() providers.Status {
	return o.llm.Status()
}

// Compare runs both engines concurrently and reports both outcomes side by
// side. Each engine's completion is awaited independently; a failure or
// panic in one has no effect on the other's entry. Compare returns only
// after both engines settle (or the caller's context deadline forces each
// engine to fail on its own).
func (o *Orchestrator) Compare(ctx context.Context, text string, hint types.CourseHint) types.Comparison {
	llmCh := make(chan types.ExtractionResult, 1)
	patternCh := make(chan types.ExtractionResult, 1)

	go func() {
		llmCh <- o.safeExtract(ctx, o.llm, text, hint)
	}()
	go func() {
		patternCh <- o.safeExtract(ctx, o.pattern, text, hint)
	}()

	comparison := types.Comparison{
		LLM:     <-llmCh,
		Pattern: <-patternCh,
	}

	o.logger.Info("comparison complete",
		"llm_success", comparison.LLM.Success,
		"llm_confidence", comparison.LLM.Confidence,
		"pattern_success", comparison.Pattern.Success,
		"pattern_confidence", comparison.Pattern.Confidence)

	return comparison
}

// safeExtract invokes one engine, converting a panic into that engine's
// failure envelope so it cannot take down the sibling engine or the caller.
func (o *Orchestrator) safeExtract(ctx context.Context, ex Extractor, text string, hint types.CourseHint) (result types.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("extraction engine panicked",
				"method", ex.Method(), "panic", r)
			result = types.Failure(fmt.Errorf("extraction engine %s panicked: %v", ex.Method(), r))
		}
	}()
	return ex.Extract(ctx, text, hint)
}
